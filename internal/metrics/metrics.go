// Package metrics exposes Prometheus instrumentation for the analytics
// server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelRoute    = "route"
	LabelStatus   = "status"
	LabelDocument = "document"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hevyviz_http_requests_total",
		Help: "HTTP requests handled, by route and status code.",
	}, []string{LabelRoute, LabelStatus})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hevyviz_http_request_duration_seconds",
		Help:    "HTTP request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{LabelRoute})

	DocumentRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hevyviz_document_requests_total",
		Help: "Derived-document fetches, by document name.",
	}, []string{LabelDocument})

	DatasetSets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hevyviz_dataset_sets",
		Help: "Sets in the loaded dataset.",
	})

	DatasetWorkouts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hevyviz_dataset_workouts",
		Help: "Workouts in the loaded dataset.",
	})

	RowsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hevyviz_rows_skipped_total",
		Help: "CSV rows skipped as malformed during loads.",
	})
)

// RecordDataset publishes the size of a freshly built dataset.
func RecordDataset(sets, workouts, skipped int) {
	DatasetSets.Set(float64(sets))
	DatasetWorkouts.Set(float64(workouts))
	RowsSkippedTotal.Add(float64(skipped))
}
