package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Mossaka/hevy-visualization/internal/config"
	"github.com/Mossaka/hevy-visualization/internal/hevy"
	"github.com/Mossaka/hevy-visualization/internal/report"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dataDir := flag.String("data", "", "override data directory from config")
	outputDir := flag.String("out", "", "override report output directory from config")
	dryRun := flag.Bool("dry-run", false, "render documents and report counts without writing files")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *outputDir != "" {
		cfg.Report.OutputDir = *outputDir
	}

	// Verify data directory exists
	info, err := os.Stat(cfg.Data.Dir)
	if err != nil || !info.IsDir() {
		log.Error("data path does not exist or is not a directory", "path", cfg.Data.Dir)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode — no files will be written")
	}

	// Load and analyze
	store := hevy.NewStore(cfg.Data.Dir, cfg.AnalysisOptions(), log)
	loadStats, err := store.Reload()
	if err != nil {
		log.Error("failed to load workout data", "dir", cfg.Data.Dir, "error", err)
		os.Exit(1)
	}
	log.Info("data loaded",
		"files", loadStats.Files,
		"rows", loadStats.Rows,
		"parsed", loadStats.Parsed,
		"skipped", loadStats.Skipped,
	)

	// Write report
	writer := report.New(cfg.Report.OutputDir, log, *dryRun)
	stats, err := writer.Write(store.Dataset())
	if err != nil {
		log.Error("report failed", "error", err)
		os.Exit(1)
	}

	log.Info("report complete",
		"documents", stats.Documents,
		"bytes", stats.Bytes,
		"output", cfg.Report.OutputDir,
	)
	if *dryRun {
		fmt.Printf("dry run: %d documents (%d bytes) would be written to %s\n",
			stats.Documents, stats.Bytes, cfg.Report.OutputDir)
	}
}
