package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.toml"

type Config struct {
	Storage Storage `toml:"storage" json:"storage"`
	Export  Export  `toml:"export" json:"export"`
	Install Install `toml:"install" json:"install"`
}

type Storage struct {
	Backend string `toml:"backend" json:"backend" validate:"oneof=file badger sqlite memory"`
	Path    string `toml:"path" json:"path" validate:"required_unless=Backend memory"`
	Key     string `toml:"key" json:"key" validate:"required,excludesall=/\\"`
}

type Export struct {
	Dir string `toml:"dir" json:"dir" validate:"required"`
}

type Install struct {
	UUID string `toml:"uuid" json:"uuid" validate:"omitempty,uuid"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Backend: "file",
			Path:    DreamlogSettings.StoreDir(),
			Key:     "dreams",
		},
		Export: Export{Dir: "."},
	}
}

// LoadConfig reads config.toml. Keys missing from the file keep their
// defaults, and a missing file yields DefaultConfig.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPath := DreamlogSettings.ConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig writes config.toml.
func SaveConfig(config *Config) error {
	if err := SaveTOML(DreamlogSettings.ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// GenerateInstallUUID generates a new UUID for this installation.
func GenerateInstallUUID() string {
	return uuid.New().String()
}

// EnsureConfig loads the config and makes sure it carries an install UUID,
// saving it when one had to be generated.
func EnsureConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if config.Install.UUID == "" {
		config.Install.UUID = GenerateInstallUUID()
		if err := SaveConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Resolve returns a copy of config with environment overrides applied and
// paths expanded, then validates it.
//
// Returns ErrInvalidConfig when validation fails.
func Resolve(config *Config, env Env) (*Config, error) {
	resolved := *config

	if env.Backend != "" {
		resolved.Storage.Backend = env.Backend
	}
	if env.StoragePath != "" {
		resolved.Storage.Path = env.StoragePath
	}
	if env.StorageKey != "" {
		resolved.Storage.Key = env.StorageKey
	}
	if env.ExportDir != "" {
		resolved.Export.Dir = env.ExportDir
	}

	resolved.Storage.Path = ExpandPath(resolved.Storage.Path)
	resolved.Export.Dir = ExpandPath(resolved.Export.Dir)

	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	return &resolved, nil
}

// Validate checks the config's fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}
	return nil
}
