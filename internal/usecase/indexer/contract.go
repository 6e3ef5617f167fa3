package indexer

import (
	"context"

	"github.com/gutensearch/gutensearch/internal/domain"
)

// Store is the backend slice the index builder writes through.
type Store interface {
	StoreBookMetadata(ctx context.Context, meta domain.BookMetadata) error
	AddWordToIndex(ctx context.Context, word string, bookID int) error
	ClearIndex(ctx context.Context) error
	Stats(ctx context.Context) (domain.IndexStats, error)
}

// BookSource is the ingestion collaborator: it resolves raw text per book and
// enumerates the known catalog for rebuilds.
type BookSource interface {
	Locate(ctx context.Context, bookID int) (header, body string, err error)
	ListKnownIDs(ctx context.Context) ([]int, error)
}
