package hevy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

// LoadStats aggregates parse outcomes across every file in a load.
type LoadStats struct {
	Files   int
	Rows    int
	Parsed  int
	Skipped int
}

// LoadDir reads every .csv file in dir and returns the union of their sets,
// ordered by start time. A file whose header cannot be read is skipped with a
// warning; the load only fails when no valid set exists at the end.
func LoadDir(dir string, logger *slog.Logger) ([]models.Set, LoadStats, error) {
	var stats LoadStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stats, fmt.Errorf("reading data dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var sets []models.Set
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "file", name, "error", err)
			continue
		}
		fileSets, fileStats, err := Parse(f)
		f.Close()
		if err != nil {
			logger.Warn("skipping malformed file", "file", name, "error", err)
			continue
		}
		stats.Files++
		stats.Rows += fileStats.Rows
		stats.Parsed += fileStats.Parsed
		stats.Skipped += fileStats.Skipped
		sets = append(sets, fileSets...)
		logger.Info("loaded export", "file", name, "rows", fileStats.Rows, "parsed", fileStats.Parsed, "skipped", fileStats.Skipped)
	}

	if len(sets) == 0 {
		return nil, stats, fmt.Errorf("no valid sets in %s", dir)
	}

	sort.SliceStable(sets, func(i, j int) bool {
		if !sets[i].Start.Equal(sets[j].Start) {
			return sets[i].Start.Before(sets[j].Start)
		}
		if sets[i].Exercise != sets[j].Exercise {
			return sets[i].Exercise < sets[j].Exercise
		}
		return sets[i].SetIndex < sets[j].SetIndex
	})

	return sets, stats, nil
}
