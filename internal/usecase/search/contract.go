package search

import (
	"context"

	"github.com/gutensearch/gutensearch/internal/domain"
)

// Store is the backend slice the query engine reads from.
type Store interface {
	GetBooksForWord(ctx context.Context, word string) ([]int, error)
	GetBookMetadata(ctx context.Context, bookID int) (domain.BookMetadata, error)
}
