// Package backend selects and constructs the persistent store
// implementation from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"rupya/internal/storage"
	"rupya/internal/storage/memory"
	"rupya/internal/storage/sqlite"
)

// Type identifies a store implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{Memory, SQLite}
}

// Config holds what Open needs to construct a store.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Open constructs the configured store. The returned cleanup is never nil.
func Open(cfg Config) (storage.Store, CleanupFunc, error) {
	switch cfg.Type {
	case Memory:
		slog.Info("Initialized memory backend")
		return memory.New(), func() error { return nil }, nil
	case SQLite:
		if cfg.SQLiteDBPath == "" {
			return nil, nil, fmt.Errorf("sqlite backend requires a database path")
		}
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
