// Package memstore is an in-memory key-value slot store for tests and
// throwaway sessions.
package memstore

import "maps"

// Store holds values for the lifetime of the process.
// Set FailWrites to make every SetItem return it.
type Store struct {
	items      map[string]string
	writes     int
	FailWrites error
}

// New returns an empty Store.
func New() *Store {
	return &Store{items: map[string]string{}}
}

// GetItem returns the value under key.
func (s *Store) GetItem(key string) (string, bool, error) {
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem overwrites the value under key.
func (s *Store) SetItem(key, value string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.items[key] = value
	s.writes++
	return nil
}

// Writes counts successful SetItem calls.
func (s *Store) Writes() int { return s.writes }

// Snapshot copies the current contents.
func (s *Store) Snapshot() map[string]string { return maps.Clone(s.items) }
