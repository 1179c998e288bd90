package hevy

import (
	"log/slog"
	"sync/atomic"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/metrics"
)

// Store owns the current dataset. Datasets are immutable; Reload builds a
// fresh one and swaps it in atomically, so readers never see a partial
// build.
type Store struct {
	dir     string
	opts    analysis.Options
	logger  *slog.Logger
	current atomic.Pointer[analysis.Dataset]
}

// NewStore creates a store reading exports from dir. Call Reload before
// serving.
func NewStore(dir string, opts analysis.Options, logger *slog.Logger) *Store {
	return &Store{dir: dir, opts: opts, logger: logger}
}

// Reload reads every export in the data directory and swaps in the new
// dataset. On error the previous dataset stays in place.
func (st *Store) Reload() (LoadStats, error) {
	sets, stats, err := LoadDir(st.dir, st.logger)
	if err != nil {
		return stats, err
	}
	ds, err := analysis.New(sets, st.opts)
	if err != nil {
		return stats, err
	}
	st.current.Store(ds)
	metrics.RecordDataset(len(ds.Sets), len(ds.Workouts), stats.Skipped)
	st.logger.Info("dataset built",
		"build_id", ds.BuildID,
		"sets", len(ds.Sets),
		"workouts", len(ds.Workouts),
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// Dataset returns the current dataset, nil before the first successful
// Reload.
func (st *Store) Dataset() *analysis.Dataset {
	return st.current.Load()
}
