// Package report writes every derived document to disk as pretty-printed
// JSON, one file per document, for static hosting or offline inspection.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
)

// Stats counts the outcome of a report run.
type Stats struct {
	Documents int
	Bytes     int
}

// Writer renders datasets into a directory of JSON documents.
type Writer struct {
	outputDir string
	log       *slog.Logger
	dryRun    bool
}

// New creates a Writer. With dryRun set, documents are rendered and counted
// but nothing is written.
func New(outputDir string, log *slog.Logger, dryRun bool) *Writer {
	return &Writer{outputDir: outputDir, log: log, dryRun: dryRun}
}

// Write renders every document of the dataset. Documents are written in name
// order so runs are reproducible.
func (w *Writer) Write(ds *analysis.Dataset) (*Stats, error) {
	stats := &Stats{}

	docs := ds.Documents()
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	if !w.dryRun {
		if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
			return stats, fmt.Errorf("creating output dir: %w", err)
		}
	}

	for _, name := range names {
		data, err := json.MarshalIndent(docs[name], "", "  ")
		if err != nil {
			return stats, fmt.Errorf("encoding %s: %w", name, err)
		}
		data = append(data, '\n')

		if !w.dryRun {
			path := filepath.Join(w.outputDir, name+".json")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return stats, fmt.Errorf("writing %s: %w", name, err)
			}
		}
		stats.Documents++
		stats.Bytes += len(data)
		w.log.Debug("document rendered", "name", name, "bytes", len(data))
	}

	return stats, nil
}
