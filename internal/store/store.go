package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

// DefaultKey is the well-known storage key of the dream collection.
const DefaultKey = "dreams"

// Backend is a durable key-value store. Get reports ok=false for an absent key.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Store persists the whole dream collection as one serialized value.
//
// There is no locking: two load-mutate-save sequences that overlap lose the
// earlier writer's changes.
type Store struct {
	backend Backend
	key     string
}

// New returns a store that keeps the collection under key.
// An empty key selects DefaultKey.
func New(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key}
}

// Key returns the storage key of the collection.
func (s *Store) Key() string {
	return s.key
}

// Load reads the collection.
//
// An absent key yields an empty collection. A backend failure returns
// ErrStorageRead. A value that cannot be decoded yields an empty collection
// together with ErrStoreUnreadable so callers can show an empty view.
func (s *Store) Load(ctx context.Context) ([]dreams.Dream, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return []dreams.Dream{}, fmt.Errorf("%w: %v", kerrors.ErrStorageRead, err)
	}
	if !ok || len(data) == 0 {
		return []dreams.Dream{}, nil
	}

	var list []dreams.Dream
	if err := json.Unmarshal(data, &list); err != nil {
		return []dreams.Dream{}, fmt.Errorf("%w: %v", kerrors.ErrStoreUnreadable, err)
	}
	if list == nil {
		list = []dreams.Dream{}
	}

	return list, nil
}

// Save overwrites the collection with list.
func (s *Store) Save(ctx context.Context, list []dreams.Dream) error {
	if list == nil {
		list = []dreams.Dream{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encoding dreams: %v", kerrors.ErrStorageWrite, err)
	}

	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStorageWrite, err)
	}

	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
