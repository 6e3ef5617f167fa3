package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/store"
)

// StoreBookMetadata upserts the row for meta.BookID; INSERT OR REPLACE
// overwrites every column on re-index.
func (s *Store) StoreBookMetadata(ctx context.Context, meta domain.BookMetadata) error {
	var year sql.NullInt64
	if meta.Year != nil {
		year = sql.NullInt64{Int64: int64(*meta.Year), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO books
			(book_id, title, author, language, year, word_count, unique_words)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.BookID, meta.Title, meta.Author, meta.Language, year,
		meta.WordCount, meta.UniqueWords,
	)
	if err != nil {
		return &store.Error{Op: store.OpUpsert, Err: err}
	}
	return nil
}

// GetBookMetadata returns the row for bookID, or domain.ErrMetadataNotFound.
func (s *Store) GetBookMetadata(ctx context.Context, bookID int) (domain.BookMetadata, error) {
	var meta domain.BookMetadata
	var year sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT book_id, title, author, language, year, word_count, unique_words
		 FROM books WHERE book_id = ?`, bookID,
	).Scan(&meta.BookID, &meta.Title, &meta.Author, &meta.Language, &year,
		&meta.WordCount, &meta.UniqueWords)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookMetadata{}, domain.ErrMetadataNotFound
	}
	if err != nil {
		return domain.BookMetadata{}, &store.Error{Op: store.OpGet, Err: err}
	}

	if year.Valid {
		y := int(year.Int64)
		meta.Year = &y
	}
	return meta, nil
}
