package sqlite

import (
	"context"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/store"
)

// Stats counts indexed books and distinct words and estimates the database
// size from the SQLite page pragmas.
func (s *Store) Stats(ctx context.Context) (domain.IndexStats, error) {
	var stats domain.IndexStats

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&stats.BooksIndexed)
	if err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT word) FROM word_index").Scan(&stats.TotalWords)
	if err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return domain.IndexStats{}, &store.Error{Op: store.OpStats, Err: err}
	}
	stats.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)

	return stats, nil
}

// ClearIndex wipes both tables in one transaction. Readers on other
// connections may still observe the old index until commit; the contract only
// promises eventual consistency during a rebuild.
func (s *Store) ClearIndex(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &store.Error{Op: store.OpClear, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM word_index"); err != nil {
		return &store.Error{Op: store.OpClear, Err: err}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM books"); err != nil {
		return &store.Error{Op: store.OpClear, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &store.Error{Op: store.OpClear, Err: err}
	}
	return nil
}
