// Package sqlitestore keeps key-value slots in a SQLite database.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"

	// Pure-Go driver, registers as "sqlite".
	_ "modernc.org/sqlite"
)

const defaultFileName = "notebook.db"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a SQLite-backed slot store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the kv table.
// An empty path means notebook.db in the working directory; ":memory:"
// gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultFileName
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// GetItem returns the value under key.
func (s *Store) GetItem(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return v, true, nil
}

// SetItem overwrites the value under key.
func (s *Store) SetItem(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
