package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	// Backend names the target backend, recorded in the audit log.
	Backend string

	// Merge merges into a target that already holds dreams instead of refusing.
	Merge bool

	// BackupDir, if set, receives a plain JSON copy of the source collection
	// before anything is written to the target.
	BackupDir string

	// Now stamps the backup file name. Defaults to time.Now.
	Now func() time.Time
}

// MigrateResult contains the outcome of a migration.
type MigrateResult struct {
	// Migrated is the number of dreams read from the source.
	Migrated int

	// Added and Replaced count records by id against the target.
	Added    int
	Replaced int

	// Total is the size of the target collection afterwards.
	Total int

	// BackupPath is where the backup was written, if one was requested.
	BackupPath string
}

// Migrate copies the dream collection from one store to another. The source
// is never modified.
//
// Returns ErrStoreNotEmpty if the target holds dreams and Merge is unset.
// Returns ErrStorageRead, ErrStoreUnreadable or ErrStorageWrite on storage failures.
func Migrate(ctx context.Context, from, to *store.Store, opts MigrateOptions) (*MigrateResult, error) {
	list, err := from.Load(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := to.Load(ctx)
	if err != nil && !(opts.Merge && errors.Is(err, kerrors.ErrStoreUnreadable)) {
		return nil, err
	}
	if len(existing) > 0 && !opts.Merge {
		return nil, fmt.Errorf("%w: %d dreams", kerrors.ErrStoreNotEmpty, len(existing))
	}

	result := &MigrateResult{Migrated: len(list)}

	if opts.BackupDir != "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		result.BackupPath, err = writeBackup(opts.BackupDir, list, now())
		if err != nil {
			return nil, err
		}
	}

	merged, added, replaced := store.Merge(existing, list)
	result.Added, result.Replaced, result.Total = added, replaced, len(merged)

	if err := to.Save(ctx, merged); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithInstall("migrate")
	auditEntry.Backend = opts.Backend
	auditEntry.RecordsCount = len(list)
	auditEntry.Added = added
	auditEntry.Replaced = replaced
	audit.Log(auditEntry)

	return result, nil
}

func writeBackup(dir string, v any, now time.Time) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	path := filepath.Join(dir, "dreams-backup-"+now.Format("20060102-150405")+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	return path, nil
}
