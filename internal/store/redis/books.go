package redis

import (
	"context"
	"strconv"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/store"
)

// StoreBookMetadata upserts the metadata hash for a book. HSET overwrites
// field values, so repeated indexing converges to the latest extraction.
func (s *Store) StoreBookMetadata(ctx context.Context, meta domain.BookMetadata) error {
	year := ""
	if meta.Year != nil {
		year = strconv.Itoa(*meta.Year)
	}

	cmd := s.b().Hset().Key(bookKey(meta.BookID)).FieldValue().
		FieldValue("title", meta.Title).
		FieldValue("author", meta.Author).
		FieldValue("language", meta.Language).
		FieldValue("year", year).
		FieldValue("word_count", strconv.Itoa(meta.WordCount)).
		FieldValue("unique_words", strconv.Itoa(meta.UniqueWords)).
		Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &store.Error{Op: store.OpUpsert, Err: err}
	}
	return nil
}

// GetBookMetadata returns the metadata hash for a book, or
// domain.ErrMetadataNotFound when no record exists.
func (s *Store) GetBookMetadata(ctx context.Context, bookID int) (domain.BookMetadata, error) {
	cmd := s.b().Hgetall().Key(bookKey(bookID)).Build()
	fields, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return domain.BookMetadata{}, &store.Error{Op: store.OpGet, Err: err}
	}
	// HGETALL on a missing key yields an empty map, not an error.
	if len(fields) == 0 {
		return domain.BookMetadata{}, domain.ErrMetadataNotFound
	}

	meta := domain.BookMetadata{
		BookID:   bookID,
		Title:    fields["title"],
		Author:   fields["author"],
		Language: fields["language"],
	}
	if y, err := strconv.Atoi(fields["year"]); err == nil {
		meta.Year = &y
	}
	meta.WordCount, _ = strconv.Atoi(fields["word_count"])
	meta.UniqueWords, _ = strconv.Atoi(fields["unique_words"])
	return meta, nil
}
