// Package storage persists machine snapshots. The Store interface is
// kept minimal so backends can be swapped; all backends hold a single
// snapshot and overwrite it on every save.
package storage

import (
	"context"
	"fmt"

	"brewd/internal/machine"
)

// Store is the persistence contract. Load returns (nil, nil) when no
// snapshot has been saved yet.
type Store interface {
	Load(ctx context.Context) (*machine.Snapshot, error)
	Save(ctx context.Context, s *machine.Snapshot) error
	Close() error
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// CorruptError reports a snapshot that could not be decoded.
type CorruptError struct {
	Source string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt snapshot in %s: %v", e.Source, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Open selects a backend by name. path is ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBadger:
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
