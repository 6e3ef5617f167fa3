package domain

import "time"

// IndexStats aggregates backend-level counters for /index/status.
type IndexStats struct {
	BooksIndexed int
	TotalWords   int
	IndexSizeMB  float64
}

// RebuildReport summarizes a full index rebuild. Per-book failures are
// counted, never propagated; the run always completes.
type RebuildReport struct {
	BooksProcessed int
	Failed         int
	Elapsed        time.Duration
}
