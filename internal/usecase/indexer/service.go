// Package indexer orchestrates per-book and full-corpus index builds.
package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/metrics"
	"github.com/gutensearch/gutensearch/internal/textproc"
)

// Service builds and maintains the search index.
type Service struct {
	store  Store
	source BookSource
	logger *zap.Logger

	mu         sync.RWMutex
	lastUpdate time.Time
}

// Status is the payload for GET /index/status.
type Status struct {
	Stats      domain.IndexStats
	LastUpdate time.Time
}

// New creates an indexer service.
func New(store Store, source BookSource, logger *zap.Logger) *Service {
	return &Service{store: store, source: source, logger: logger}
}

// IndexBook resolves a book's text, extracts metadata, tokenizes, and writes
// both the metadata record and the inverted-index entries. Writes are
// idempotent, so re-running after a partial failure converges; at-least-once
// semantics are all the backend contract promises.
func (s *Service) IndexBook(ctx context.Context, bookID int) error {
	start := time.Now()

	header, body, err := s.source.Locate(ctx, bookID)
	if err != nil {
		return fmt.Errorf("locate book %d: %w", bookID, err)
	}

	meta := textproc.ExtractMetadata(header, bookID)
	bodyWords := textproc.Tokenize(body)
	titleWords := textproc.Tokenize(meta.Title)

	meta.WordCount = textproc.CountWords(body)
	// Body tokens only; title tokens are indexed below but never counted here.
	meta.UniqueWords = len(bodyWords)

	if err := s.store.StoreBookMetadata(ctx, meta); err != nil {
		return fmt.Errorf("store metadata for book %d: %w", bookID, err)
	}

	for _, word := range union(bodyWords, titleWords) {
		if err := s.store.AddWordToIndex(ctx, word, bookID); err != nil {
			return fmt.Errorf("index word %q for book %d: %w", word, bookID, err)
		}
	}

	s.touch()
	metrics.BooksIndexedTotal.Inc()
	metrics.IndexingDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("book indexed",
		zap.Int("book_id", bookID),
		zap.Int("word_count", meta.WordCount),
		zap.Int("unique_words", meta.UniqueWords),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Rebuild clears the index and re-indexes every book the source knows about.
// A single book's failure is logged and counted, never propagated; the run
// always completes and reports how many books made it.
func (s *Service) Rebuild(ctx context.Context) (domain.RebuildReport, error) {
	start := time.Now()

	if err := s.store.ClearIndex(ctx); err != nil {
		return domain.RebuildReport{}, fmt.Errorf("clear index: %w", err)
	}

	ids, err := s.source.ListKnownIDs(ctx)
	if err != nil {
		return domain.RebuildReport{}, fmt.Errorf("list known books: %w", err)
	}

	report := domain.RebuildReport{}
	for _, id := range ids {
		if err := s.IndexBook(ctx, id); err != nil {
			report.Failed++
			metrics.RebuildFailuresTotal.Inc()
			s.logger.Warn("rebuild: book skipped", zap.Int("book_id", id), zap.Error(err))
			continue
		}
		report.BooksProcessed++
	}
	report.Elapsed = time.Since(start)

	s.logger.Info("index rebuilt",
		zap.Int("books_processed", report.BooksProcessed),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// Status returns backend stats plus the time of the last successful index
// write in this process.
func (s *Service) Status(ctx context.Context) (Status, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("index stats: %w", err)
	}

	s.mu.RLock()
	last := s.lastUpdate
	s.mu.RUnlock()

	return Status{Stats: stats, LastUpdate: last}, nil
}

func (s *Service) touch() {
	s.mu.Lock()
	s.lastUpdate = time.Now()
	s.mu.Unlock()
}

// union merges two sorted token slices into one deduplicated slice.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
