// Command hevyviz-mcp runs the analytics MCP server over stdio for local
// editor use. The same MCP server is also mounted on the HTTP server at /mcp.
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Mossaka/hevy-visualization/internal/config"
	"github.com/Mossaka/hevy-visualization/internal/hevy"
	"github.com/Mossaka/hevy-visualization/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "log to stderr (stdout carries the MCP transport)")
	flag.Parse()

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := hevy.NewStore(cfg.Data.Dir, cfg.AnalysisOptions(), log)
	if _, err := store.Reload(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load workout data", "error", err)
		os.Exit(1)
	}

	srv := mcp.New(store, Version, log)
	if err := mcpserver.ServeStdio(srv); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
