package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-backed key-value slots. Single file, human-readable, portable.
// Every value is a string, the way browser local storage keeps them.
// No locking; fine for a local single-user tool.

const dataFileName = "notebook.json"

// Store keeps string values in one JSON object on disk.
type Store struct {
	path string
}

// Open returns a Store for path. An empty path means notebook.json in the
// working directory. The file is created lazily on the first write.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := dataPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Path reports the file backing the store.
func (s *Store) Path() string { return s.path }

func dataPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, dataFileName), nil
}

// GetItem returns the value under key. A missing file or key is not an
// error; ok reports whether a value exists.
func (s *Store) GetItem(key string) (string, bool, error) {
	slots, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := slots[key]
	return v, ok, nil
}

// SetItem overwrites the value under key. A malformed file is replaced.
func (s *Store) SetItem(key, value string) error {
	slots, err := s.read()
	if err != nil {
		slots = map[string]string{}
	}
	slots[key] = value

	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) read() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	slots := map[string]string{}
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return slots, nil
}
