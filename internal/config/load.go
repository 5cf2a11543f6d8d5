package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	appName           = "notebook"
	projectConfigFile = "notebook.toml"
	userConfigFile    = "config.toml"
	envFile           = ".env"
)

// Load resolves configuration in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/notebook/config.toml)
// 3. Project config file (notebook.toml in the working directory)
// 4. .env in the working directory (never overrides the real environment)
// 5. Environment variables
// 6. Flags on fs, parsed from args
//
// The returned slice holds the arguments left after flag parsing.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("loading %s: %w", envFile, err)
	}
	loadFromEnv(cfg)

	rest, err := parseFlags(cfg, fs, args)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appName, userConfigFile)
	if fileExists(p) {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	if fileExists(projectConfigFile) {
		return projectConfigFile
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from NOTEBOOK_* variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NOTEBOOK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("NOTEBOOK_PATH"); v != "" {
		cfg.Path = v
	}
	if v := os.Getenv("NOTEBOOK_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("NOTEBOOK_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("NOTEBOOK_GROUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Group = b
		}
	}
	if v := os.Getenv("NOTEBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NOTEBOOK_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// parseFlags registers the root flags on fs and applies the ones that were
// set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) ([]string, error) {
	backend := fs.String("backend", cfg.Backend, "storage backend: json, sqlite or memory")
	path := fs.String("path", cfg.Path, "storage file (default notebook.json / notebook.db in the working directory)")
	key := fs.String("key", cfg.Key, "storage key holding the note list")
	theme := fs.String("theme", cfg.Theme, "output theme: classic, neon or mono")
	group := fs.Bool("group", cfg.Group, "group ls output by pending/done")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	logFile := fs.String("log-file", cfg.LogFile, "write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "path":
			cfg.Path = *path
		case "key":
			cfg.Key = *key
		case "theme":
			cfg.Theme = *theme
		case "group":
			cfg.Group = *group
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		}
	})
	return fs.Args(), nil
}
