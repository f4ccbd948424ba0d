package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/mcp"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymlog-mcp", Version)
		return
	}

	// stdout carries the MCP transport; logs go to stderr.
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

	tracker := session.New(store, log)
	tracker.Resume(context.Background())

	s := mcp.New(tracker, store, Version, log)
	log.Info("serving MCP over stdio", "dir", cfg.Storage.Dir)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
