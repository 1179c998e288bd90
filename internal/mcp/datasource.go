package mcp

import (
	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/hevy"
)

// DataSource abstracts where the dataset comes from. The in-process store
// satisfies it directly; tests substitute a fixed dataset.
type DataSource interface {
	Dataset() *analysis.Dataset
}

// Compile-time check: *hevy.Store satisfies DataSource.
var _ DataSource = (*hevy.Store)(nil)
