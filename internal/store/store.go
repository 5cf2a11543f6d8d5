// Package store persists the note list under a single key-value slot.
//
// Storage is the slot abstraction (one string per key, like browser local
// storage); Adapter is the codec that reads and writes the note list
// through it.
package store

import (
	"fmt"

	"github.com/idilsaglam/notebook/internal/store/jsonstore"
	"github.com/idilsaglam/notebook/internal/store/memstore"
	"github.com/idilsaglam/notebook/internal/store/sqlitestore"
)

// DefaultKey is the slot the note list lives under.
const DefaultKey = "notes"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Storage is a string-valued key-value slot store.
type Storage interface {
	// GetItem returns the value under key; ok is false when nothing is stored.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem overwrites the value under key.
	SetItem(key, value string) error
}

// Open returns the named backend rooted at path (backend default when
// empty) and a close func to call at exit.
func Open(backend, path string) (Storage, func() error, error) {
	nop := func() error { return nil }

	switch backend {
	case BackendJSON, "":
		s, err := jsonstore.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return s, nop, nil
	case BackendSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil
	case BackendMemory:
		return memstore.New(), nop, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}
