package redis

import (
	"context"
	"strconv"
	"strings"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/store"
)

// Stats counts indexed books and distinct words and reports the server's
// used memory as the approximate index size.
func (s *Store) Stats(ctx context.Context) (domain.IndexStats, error) {
	books, err := s.scan(ctx, bookKeyPrefix+"*")
	if err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}
	words, err := s.scan(ctx, wordKeyPrefix+"*")
	if err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}

	stats := domain.IndexStats{
		BooksIndexed: len(books),
		TotalWords:   len(words),
	}

	info, err := s.do(ctx, s.b().Info().Section("memory").Build()).ToString()
	if err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}
	stats.IndexSizeMB = usedMemoryMB(info)

	return stats, nil
}

// ClearIndex removes every book and word key. Not atomic: concurrent readers
// may observe a partially cleared index during a rebuild.
func (s *Store) ClearIndex(ctx context.Context) error {
	for _, pattern := range []string{bookKeyPrefix + "*", wordKeyPrefix + "*"} {
		keys, err := s.scan(ctx, pattern)
		if err != nil {
			return &store.Error{Op: store.OpClear, Err: err}
		}
		if len(keys) == 0 {
			continue
		}
		cmd := s.b().Del().Key(keys...).Build()
		if err := s.do(ctx, cmd).Error(); err != nil {
			return &store.Error{Op: store.OpClear, Err: err}
		}
	}
	return nil
}

// scan iterates keys matching a pattern.
func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, err
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// usedMemoryMB extracts used_memory from an INFO memory section.
func usedMemoryMB(info string) float64 {
	for _, line := range strings.Split(info, "\n") {
		rest, ok := strings.CutPrefix(line, "used_memory:")
		if !ok {
			continue
		}
		bytes, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return 0
		}
		return bytes / (1024 * 1024)
	}
	return 0
}
