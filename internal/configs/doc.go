// Package configs manages dreamlog's configuration.
//
// Configuration lives in a TOML file at $XDG_CONFIG_HOME/dreamlog/config.toml:
//
//	[storage]
//	backend = "file"   # file, badger, sqlite or memory
//	path = "~/.local/share/dreamlog/store"
//	key = "dreams"
//
//	[export]
//	dir = "."
//
//	[install]
//	uuid = "..."
//
// The install UUID is generated on first use and tags audit entries.
//
// # Environment
//
// DREAMLOG_BACKEND, DREAMLOG_STORAGE_PATH, DREAMLOG_STORAGE_KEY and
// DREAMLOG_EXPORT_DIR override the file through [Resolve] without being
// written back. DREAMLOG_CONFIG_DIR and DREAMLOG_DATA_DIR move the
// directories themselves and are read once at startup into DreamlogSettings.
package configs
