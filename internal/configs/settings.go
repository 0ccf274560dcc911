package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. DREAMLOG_BACKEND.
const EnvPrefix = "DREAMLOG"

// Env holds the environment overrides. Empty fields are not applied.
type Env struct {
	Backend     string `envconfig:"BACKEND"`
	StoragePath string `envconfig:"STORAGE_PATH"`
	StorageKey  string `envconfig:"STORAGE_KEY"`
	ExportDir   string `envconfig:"EXPORT_DIR"`
	ConfigDir   string `envconfig:"CONFIG_DIR"`
	DataDir     string `envconfig:"DATA_DIR"`

	// Password answers export and import password prompts without a terminal.
	Password string `envconfig:"PASSWORD"`
}

// Settings locates dreamlog's directories on this machine.
type Settings struct {
	ConfigDir string
	DataDir   string
}

var DreamlogSettings *Settings

func init() {
	env, err := LoadEnv()
	if err != nil {
		log.Fatalf("error reading environment: %s", err)
	}

	settings, err := defaultSettings(env)
	if err != nil {
		log.Fatalf("error resolving directories: %s", err)
	}
	DreamlogSettings = settings
}

// LoadEnv reads the DREAMLOG_* environment overrides.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

func defaultSettings(env Env) (*Settings, error) {
	configDir := env.ConfigDir
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(base, "dreamlog")
	}

	dataDir := env.DataDir
	if dataDir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(homeDir, ".local", "share")
		}
		dataDir = filepath.Join(base, "dreamlog")
	}

	return &Settings{
		ConfigDir: ExpandPath(configDir),
		DataDir:   ExpandPath(dataDir),
	}, nil
}

// ConfigPath returns the path of config.toml.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, ConfigFileName)
}

// StoreDir returns the default storage directory.
func (s *Settings) StoreDir() string {
	return filepath.Join(s.DataDir, "store")
}

// AuditPath returns the path of the audit log.
func (s *Settings) AuditPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
