package store

import (
	"fmt"

	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every backend name Open understands.
var Backends = []string{BackendFile, BackendBadger, BackendSQLite, BackendMemory}

// Config selects and configures a backend.
type Config struct {
	Backend string // file, badger, sqlite or memory; empty means file
	Path    string // storage directory, unused by memory
	Key     string // collection key, empty means DefaultKey
	Logger  Logger
}

// Open builds the configured backend and wraps it in a Store.
func Open(cfg Config) (*Store, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, cfg.Key), nil
}

// OpenBackend builds the configured backend.
//
// Returns ErrUnknownBackend for an unrecognized name and ErrStorageRead when
// the backend cannot be opened.
func OpenBackend(cfg Config) (Backend, error) {
	switch cfg.Backend {
	case "", BackendFile:
		b, err := NewFileBackend(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrStorageRead, err)
		}
		return b, nil
	case BackendBadger:
		b, err := OpenBadger(cfg.Path, false, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrStorageRead, err)
		}
		return b, nil
	case BackendSQLite:
		b, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrStorageRead, err)
		}
		return b, nil
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownBackend, cfg.Backend)
	}
}
