// Package logging builds the leveled logger shared by the notebook.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "notebook"

// Options configures New.
type Options struct {
	Level string // debug, info, warn or error
	File  string // empty writes to stderr
	// Fullscreen drops output when no File is set, so log lines do not
	// draw over a program that owns the terminal.
	Fullscreen bool
}

// New returns a logger and a func closing its output. With a File set,
// logs go there and timestamps are reported.
func New(opts Options) (*log.Logger, func() error, error) {
	w, closeFn, stamp, err := output(opts)
	if err != nil {
		return nil, nil, err
	}
	return NewWithWriter(w, ParseLevel(opts.Level), stamp), closeFn, nil
}

func output(opts Options) (io.Writer, func() error, bool, error) {
	nop := func() error { return nil }
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, false, fmt.Errorf("open log file: %w", err)
		}
		return f, f.Close, true, nil
	case opts.Fullscreen:
		return io.Discard, nop, false, nil
	}
	return os.Stderr, nop, false, nil
}

// NewWithWriter returns a text logger writing to w.
func NewWithWriter(w io.Writer, level log.Level, timestamps bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: timestamps,
		Prefix:          prefix,
	})
}

// ParseLevel maps a level name to a log.Level, defaulting to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
