// Package store defines the storage backend contract shared by the key-value
// and relational implementations. Both variants must give identical semantics:
// metadata writes are upserts keyed by book id, index writes are set-adds, and
// lookups never depend on backend-specific transactional guarantees.
package store

import (
	"context"
	"time"

	"github.com/gutensearch/gutensearch/internal/domain"
)

// Store is the full backend facade. Implementations must be safe for
// concurrent use; a single Store instance is shared by all request handlers.
type Store interface {
	Pinger
	BookStore
	WordIndex
	Stats(ctx context.Context) (domain.IndexStats, error)
	ClearIndex(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BookStore persists book metadata.
type BookStore interface {
	// StoreBookMetadata upserts the record for meta.BookID. Re-indexing the
	// same book overwrites every field.
	StoreBookMetadata(ctx context.Context, meta domain.BookMetadata) error
	// GetBookMetadata returns the stored record or domain.ErrMetadataNotFound.
	GetBookMetadata(ctx context.Context, bookID int) (domain.BookMetadata, error)
}

// WordIndex is the inverted index: normalized word -> set of book ids.
type WordIndex interface {
	// AddWordToIndex adds bookID to the set for word. Adding an existing
	// member is a no-op; membership only grows outside ClearIndex.
	AddWordToIndex(ctx context.Context, word string, bookID int) error
	// GetBooksForWord returns the (possibly empty) book-id set for word.
	GetBooksForWord(ctx context.Context, word string) ([]int, error)
}
