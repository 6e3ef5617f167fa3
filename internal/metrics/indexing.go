package metrics

import "github.com/prometheus/client_golang/prometheus"

// Indexing Prometheus metrics.
var (
	BooksIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gutensearch",
			Name:      "books_indexed_total",
			Help:      "Total number of successful book index operations",
		},
	)

	IndexingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gutensearch",
			Name:      "indexing_duration_seconds",
			Help:      "Per-book indexing duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	RebuildFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gutensearch",
			Name:      "rebuild_failures_total",
			Help:      "Total number of books skipped during rebuilds",
		},
	)
)

var indexingMetricsRegistered bool

// RegisterIndexingMetrics registers the indexing metrics. Must be called once
// from main.
func RegisterIndexingMetrics() {
	if indexingMetricsRegistered {
		return
	}
	prometheus.MustRegister(BooksIndexedTotal)
	prometheus.MustRegister(IndexingDuration)
	prometheus.MustRegister(RebuildFailuresTotal)
	indexingMetricsRegistered = true
}
