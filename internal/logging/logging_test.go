package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.WarnLevel,
		"bogus":   log.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, log.WarnLevel, false)

	logger.Debug("hidden")
	logger.Warn("notes not persisted", "count", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "notes not persisted")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, prefix)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.log")
	logger, closeFn, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}

func TestNewBadFile(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.ErrorContains(t, err, "open log file")
}

func TestOutputChoice(t *testing.T) {
	w, _, stamp, err := output(Options{})
	require.NoError(t, err)
	assert.Same(t, os.Stderr, w)
	assert.False(t, stamp)

	w, _, _, err = output(Options{Fullscreen: true})
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)

	path := filepath.Join(t.TempDir(), "tui.log")
	w, closeFn, stamp, err := output(Options{Fullscreen: true, File: path})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &os.File{}, w)
	assert.True(t, stamp)
}
