// Package audit records what dreamlog did to the journal.
//
// Every operation that changes or copies the journal (create, edit, remove,
// reset, export, import and migrate) is appended to a per-user audit log so
// its history can be reviewed with "dreamlog dreams log".
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	<data dir>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Install UUID and storage backend from the config file
//   - Operation name
//   - Operation-specific details (dream id, file name, record counts)
//
// Dream text never reaches the log.
//
// # Usage
//
//	entry := audit.LogWithInstall("export")
//	entry.Filename = name
//	entry.Encrypted = true
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
package audit
