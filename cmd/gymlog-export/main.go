package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/export"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outPath := flag.String("out", "", "output file (default: stdout)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymlog-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Dir, log)
	if err != nil {
		log.Error("failed to open store", "dir", cfg.Storage.Dir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// The tracker owns history ordering; export through it so the CLI
	// and the HTTP export produce identically ordered artifacts.
	tracker := session.New(store, log)
	tracker.Resume(context.Background())
	sessions := tracker.History()

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error("failed to create output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, sessions); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	if *outPath != "" {
		log.Info("export written", "path", *outPath, "workouts", len(sessions))
	}
}
