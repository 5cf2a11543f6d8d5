package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/notebook/internal/cli"
	"github.com/idilsaglam/notebook/internal/config"
	"github.com/idilsaglam/notebook/internal/logging"
	"github.com/idilsaglam/notebook/internal/notes"
	"github.com/idilsaglam/notebook/internal/store"
	"github.com/idilsaglam/notebook/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.Usage = func() {
		cli.PrintHelp(os.Stderr)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	ui.SetTheme(cfg.Theme)

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Fullscreen: cli.Fullscreen(args),
	})
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer closeLog()

	storage, closeStore, err := store.Open(cfg.Backend, cfg.Path)
	if err != nil {
		logger.Error("open storage", "backend", cfg.Backend, "err", err)
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer closeStore()

	ctrl := notes.New(store.NewAdapter(storage, cfg.Key, logger), logger)

	// Hand the remaining args to the CLI runner.
	return cli.Run(args, ctrl, cli.Options{Group: cfg.Group})
}
