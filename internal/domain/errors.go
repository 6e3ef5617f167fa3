package domain

import "errors"

var (
	// ErrBookNotFound signals that the ingestion datalake has no text for a book.
	ErrBookNotFound = errors.New("book not found")
	// ErrMetadataNotFound signals that no metadata is stored for a book id.
	ErrMetadataNotFound = errors.New("book metadata not found")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("empty query")
)
