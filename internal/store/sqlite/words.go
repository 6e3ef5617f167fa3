package sqlite

import (
	"context"

	"github.com/gutensearch/gutensearch/internal/store"
)

// AddWordToIndex inserts a (word, book_id) pair; the composite primary key
// plus INSERT OR IGNORE makes repeats a no-op.
func (s *Store) AddWordToIndex(ctx context.Context, word string, bookID int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO word_index (word, book_id) VALUES (?, ?)",
		word, bookID,
	)
	if err != nil {
		return &store.Error{Op: store.OpAddWord, Err: err}
	}
	return nil
}

// GetBooksForWord returns all book ids indexed under word.
func (s *Store) GetBooksForWord(ctx context.Context, word string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT book_id FROM word_index WHERE word = ?", word,
	)
	if err != nil {
		return nil, &store.Error{Op: store.OpGetBooks, Err: err}
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, &store.Error{Op: store.OpGetBooks, Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.Error{Op: store.OpGetBooks, Err: err}
	}
	return ids, nil
}
