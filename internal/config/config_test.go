package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and working dir at empty temp dirs and
// clears NOTEBOOK_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{
		"NOTEBOOK_BACKEND", "NOTEBOOK_PATH", "NOTEBOOK_KEY", "NOTEBOOK_THEME",
		"NOTEBOOK_GROUP", "NOTEBOOK_LOG_LEVEL", "NOTEBOOK_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	wd := t.TempDir()
	chdir(t, wd)
	return home
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, rest, err := Load(newFlagSet(), []string{"ls"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Backend)
	assert.Equal(t, "notes", cfg.Key)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Path)
	assert.False(t, cfg.Group)
	assert.Equal(t, []string{"ls"}, rest)
}

func TestProjectFileOverridesUserFile(t *testing.T) {
	home := isolate(t)

	userDir := filepath.Join(home, ".config", "notebook")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"),
		[]byte("backend = \"sqlite\"\ntheme = \"neon\"\n"), 0o644))
	require.NoError(t, os.WriteFile("notebook.toml",
		[]byte("theme = \"mono\"\ngroup = true\n"), 0o644))

	cfg, _, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "mono", cfg.Theme)
	assert.True(t, cfg.Group)
}

func TestEnvOverridesFiles(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("notebook.toml", []byte("key = \"from-file\"\n"), 0o644))
	t.Setenv("NOTEBOOK_KEY", "from-env")
	t.Setenv("NOTEBOOK_GROUP", "true")

	cfg, _, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Key)
	assert.True(t, cfg.Group)
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	// godotenv never overrides variables that already exist, so drop the
	// one isolate set before writing it to .env.
	require.NoError(t, os.Unsetenv("NOTEBOOK_LOG_FILE"))
	t.Cleanup(func() { os.Unsetenv("NOTEBOOK_LOG_FILE") })
	require.NoError(t, os.WriteFile(".env", []byte("NOTEBOOK_LOG_FILE=notes.log\n"), 0o644))

	cfg, _, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "notes.log", cfg.LogFile)
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("NOTEBOOK_BACKEND", "sqlite")

	cfg, rest, err := Load(newFlagSet(), []string{"-backend", "memory", "-key", "k", "-group", "add", "milk"})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "k", cfg.Key)
	assert.True(t, cfg.Group)
	assert.Equal(t, []string{"add", "milk"}, rest)
}

func TestUnsetFlagsKeepLowerLayers(t *testing.T) {
	isolate(t)
	t.Setenv("NOTEBOOK_THEME", "neon")

	cfg, _, err := Load(newFlagSet(), []string{"-key", "k"})
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown backend", []string{"-backend", "redis"}, "unknown backend"},
		{"empty key", []string{"-key", " "}, "storage key is empty"},
		{"bad level", []string{"-log-level", "loud"}, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := Load(newFlagSet(), tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestMalformedProjectFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("notebook.toml", []byte("backend = \n"), 0o644))

	_, _, err := Load(newFlagSet(), nil)
	assert.ErrorContains(t, err, "loading project config file")
}

// chdir changes the working directory for the rest of the test and
// restores it on cleanup (t.Chdir is unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
