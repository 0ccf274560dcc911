package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/configs"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/store"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configMigrateBackend   string
	configMigratePath      string
	configMigrateKey       string
	configMigrateMerge     bool
	configMigrateBackupDir string
)

func init() {
	configMigrateCmd.Flags().StringVar(&configMigrateBackend, "backend", "", "target storage backend: "+strings.Join(store.Backends, ", "))
	configMigrateCmd.Flags().StringVar(&configMigratePath, "path", "", "target storage directory (defaults to the current one)")
	configMigrateCmd.Flags().StringVar(&configMigrateKey, "key", "", "target collection key (defaults to the current one)")
	configMigrateCmd.Flags().BoolVar(&configMigrateMerge, "merge", false, "merge into a target that already holds dreams")
	configMigrateCmd.Flags().StringVar(&configMigrateBackupDir, "backup-dir", "", "write a JSON copy of the journal here first")
}

// resetConfigMigrateState resets the config migrate command's global state for testing.
func resetConfigMigrateState() {
	configMigrateBackend = ""
	configMigratePath = ""
	configMigrateKey = ""
	configMigrateMerge = false
	configMigrateBackupDir = ""
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move the journal to another storage backend",
	Long: `Copies every dream from the current store to a new one and points the
config file at the new store. The old store is left as it was.

The target must be empty unless --merge is given, in which case records
are merged by id and the current store wins.

Examples:
  # Move to SQLite in the same directory
  dreamlog config migrate --backend sqlite

  # Move to Badger elsewhere, keeping a backup
  dreamlog config migrate --backend badger --path ~/dreams --backup-dir ~/Desktop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config migrate command")
		ConfigLogger.Debugf("Flags: backend=%s, path=%s, key=%s, merge=%t, backup-dir=%s",
			configMigrateBackend, configMigratePath, configMigrateKey, configMigrateMerge, configMigrateBackupDir)

		fileConfig, err := configs.EnsureConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}
		env, err := configs.LoadEnv()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to read environment: %v", err)
		}
		current, err := configs.Resolve(fileConfig, env)
		if err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
			return nil
		}

		target := *current
		if configMigrateBackend != "" {
			target.Storage.Backend = configMigrateBackend
		}
		if configMigratePath != "" {
			target.Storage.Path = configs.ExpandPath(configMigratePath)
		}
		if configMigrateKey != "" {
			target.Storage.Key = configMigrateKey
		}
		if err := target.Validate(); err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
			return nil
		}
		if target.Storage == current.Storage {
			fmt.Println(ui.Warning.Sprint("⚠") + " The journal already lives in that store, nothing to migrate")
			return nil
		}

		from, err := openConfiguredStore(current.Storage)
		if err != nil {
			return configMigrateError(err)
		}
		defer closeConfiguredStore(from)

		to, err := openConfiguredStore(target.Storage)
		if err != nil {
			return configMigrateError(err)
		}
		defer closeConfiguredStore(to)

		ConfigLogger.Infof("Migrating %s store at %s to %s store at %s",
			current.Storage.Backend, current.Storage.Path, target.Storage.Backend, target.Storage.Path)
		result, err := workflows.Migrate(context.Background(), from, to, workflows.MigrateOptions{
			Backend:   target.Storage.Backend,
			Merge:     configMigrateMerge,
			BackupDir: configs.ExpandPath(configMigrateBackupDir),
		})
		if err != nil {
			return configMigrateError(err)
		}

		fileConfig.Storage = target.Storage
		if err := configs.SaveConfig(fileConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Dreams were copied but the config could not be saved: %v", err)
		}

		if result.BackupPath != "" {
			fmt.Println(ui.Info.Sprint("→") + " Backup written to " + ui.Path.Sprint(result.BackupPath))
		}
		fmt.Printf("%s Migrated %d %s to the %s store (%d added, %d replaced, %d total)\n",
			ui.Success.Sprint("✓"), result.Migrated, pluralDreams(result.Migrated),
			ui.Highlight.Sprint(target.Storage.Backend), result.Added, result.Replaced, result.Total)
		if env.Backend != "" || env.StoragePath != "" || env.StorageKey != "" {
			fmt.Println(ui.Warning.Sprint("⚠") + " DREAMLOG_* storage variables are set and still override the config file")
		}
		return nil
	},
}

func openConfiguredStore(s configs.Storage) (*store.Store, error) {
	return store.Open(store.Config{
		Backend: s.Backend,
		Path:    s.Path,
		Key:     s.Key,
		Logger:  ConfigLogger,
	})
}

func closeConfiguredStore(s *store.Store) {
	if err := s.Close(); err != nil {
		ConfigLogger.Warnf("Failed to close store: %v", err)
	}
}

func configMigrateError(err error) error {
	switch {
	case errors.Is(err, kerrors.ErrStoreNotEmpty):
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		fmt.Println(ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("--merge") + " to merge into it")
		return nil
	case errors.Is(err, kerrors.ErrStoreUnreadable), errors.Is(err, kerrors.ErrUnknownBackend):
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return nil
	}
	return ConfigLogger.ErrorfAndReturn("Migration failed: %v", err)
}
