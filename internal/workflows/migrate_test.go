package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

func TestMigrate_CopiesCollection(t *testing.T) {
	from := setupStore(t)
	to := store.New(store.NewMemoryBackend(), "")
	seed(t, from, sampleDream("dream_1_aaaaaa", "one"), sampleDream("dream_2_bbbbbb", "two"))

	result, err := Migrate(context.Background(), from, to, MigrateOptions{Backend: "sqlite"})
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	if result.Migrated != 2 || result.Added != 2 || result.Replaced != 0 || result.Total != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.BackupPath != "" {
		t.Errorf("Expected no backup, got %s", result.BackupPath)
	}

	got := load(t, to)
	if len(got) != 2 || got[0].ID != "dream_1_aaaaaa" || got[1].ID != "dream_2_bbbbbb" {
		t.Errorf("Expected both dreams in order, got %+v", got)
	}
	if len(load(t, from)) != 2 {
		t.Error("Expected the source to be left alone")
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	last := entries[len(entries)-1]
	if last.Operation != "migrate" || last.Backend != "sqlite" || last.RecordsCount != 2 {
		t.Errorf("Unexpected audit entry: %+v", last)
	}
}

func TestMigrate_RefusesNonEmptyTarget(t *testing.T) {
	from := setupStore(t)
	to := store.New(store.NewMemoryBackend(), "")
	seed(t, from, sampleDream("dream_1_aaaaaa", "one"))
	seed(t, to, sampleDream("dream_9_zzzzzz", "kept"))

	_, err := Migrate(context.Background(), from, to, MigrateOptions{})
	if !errors.Is(err, kerrors.ErrStoreNotEmpty) {
		t.Fatalf("Expected ErrStoreNotEmpty, got %v", err)
	}

	got := load(t, to)
	if len(got) != 1 || got[0].ID != "dream_9_zzzzzz" {
		t.Errorf("Expected the target untouched, got %+v", got)
	}
}

func TestMigrate_Merge(t *testing.T) {
	from := setupStore(t)
	to := store.New(store.NewMemoryBackend(), "")
	seed(t, from, sampleDream("dream_1_aaaaaa", "new text"), sampleDream("dream_2_bbbbbb", "two"))
	seed(t, to, sampleDream("dream_1_aaaaaa", "old text"), sampleDream("dream_9_zzzzzz", "kept"))

	result, err := Migrate(context.Background(), from, to, MigrateOptions{Merge: true})
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if result.Added != 1 || result.Replaced != 1 || result.Total != 3 {
		t.Errorf("Unexpected result: %+v", result)
	}

	d, i := store.Find(load(t, to), "dream_1_aaaaaa")
	if i < 0 || d.DreamText != "new text" {
		t.Errorf("Expected the source record to win, got %+v", d)
	}
}

func TestMigrate_WritesBackup(t *testing.T) {
	from := setupStore(t)
	to := store.New(store.NewMemoryBackend(), "")
	seed(t, from, sampleDream("dream_1_aaaaaa", "one"))
	backupDir := filepath.Join(t.TempDir(), "backups")

	now := func() time.Time { return time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC) }
	result, err := Migrate(context.Background(), from, to, MigrateOptions{BackupDir: backupDir, Now: now})
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	want := filepath.Join(backupDir, "dreams-backup-20240305-060708.json")
	if result.BackupPath != want {
		t.Errorf("Expected backup at %s, got %s", want, result.BackupPath)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	var backup []dreams.Dream
	if err := json.Unmarshal(data, &backup); err != nil {
		t.Fatalf("Failed to parse backup: %v", err)
	}
	if len(backup) != 1 || backup[0].ID != "dream_1_aaaaaa" {
		t.Errorf("Unexpected backup contents: %+v", backup)
	}
}

func TestMigrate_UnreadableSource(t *testing.T) {
	setupStore(t)
	backend := store.NewMemoryBackend()
	if err := backend.Set(context.Background(), store.DefaultKey, []byte("not json")); err != nil {
		t.Fatalf("Failed to corrupt store: %v", err)
	}
	from := store.New(backend, "")
	to := store.New(store.NewMemoryBackend(), "")

	_, err := Migrate(context.Background(), from, to, MigrateOptions{})
	if !errors.Is(err, kerrors.ErrStoreUnreadable) {
		t.Fatalf("Expected ErrStoreUnreadable, got %v", err)
	}
	if len(load(t, to)) != 0 {
		t.Error("Expected nothing written to the target")
	}
}
