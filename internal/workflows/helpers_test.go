package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/dreamlog/internal/configs"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

// setupStore returns an in-memory store and points config and audit files
// at a temp directory for the duration of the test.
func setupStore(t *testing.T) *store.Store {
	t.Helper()
	tempDir := t.TempDir()

	original := configs.DreamlogSettings
	configs.DreamlogSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		configs.DreamlogSettings = original
	})

	return store.New(store.NewMemoryBackend(), "")
}

func seed(t *testing.T, s *store.Store, list ...dreams.Dream) {
	t.Helper()
	if err := s.Save(context.Background(), list); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
}

func load(t *testing.T, s *store.Store) []dreams.Dream {
	t.Helper()
	list, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return list
}

func sampleDream(id, text string) dreams.Dream {
	d := dreams.Dream{
		ID:         id,
		DreamText:  text,
		Characters: []string{},
		TodayDate:  dreams.Now(),
		SleepDate:  dreams.Now(),
	}
	return d
}

// memoryDeliverer keeps the last delivery in memory.
type memoryDeliverer struct {
	data     []byte
	filename string
	calls    int
}

func (m *memoryDeliverer) Deliver(ctx context.Context, data []byte, filename string) error {
	m.data = append([]byte(nil), data...)
	m.filename = filename
	m.calls++
	return nil
}
