// Package config resolves notebook settings from defaults, TOML files, a
// .env file, environment variables and flags, in that order.
package config

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/notebook/internal/store"
)

// Config is the resolved notebook configuration.
type Config struct {
	// Storage
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Key     string `toml:"key"`

	// Output
	Theme string `toml:"theme"`
	Group bool   `toml:"group"`

	// Logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func setDefaults(cfg *Config) {
	cfg.Backend = store.BackendJSON
	cfg.Key = store.DefaultKey
	cfg.Theme = "classic"
	cfg.LogLevel = "warn"
}

func validate(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case store.BackendJSON, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", cfg.Backend)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return fmt.Errorf("storage key is empty")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return nil
}
