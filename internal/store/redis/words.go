package redis

import (
	"context"
	"strconv"

	"github.com/gutensearch/gutensearch/internal/store"
)

// AddWordToIndex adds a book id to the set for word. SADD of an existing
// member is a no-op, which gives the required idempotency for free.
func (s *Store) AddWordToIndex(ctx context.Context, word string, bookID int) error {
	cmd := s.b().Sadd().Key(wordKey(word)).Member(strconv.Itoa(bookID)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &store.Error{Op: store.OpAddWord, Err: err}
	}
	return nil
}

// GetBooksForWord returns the book-id set for word, empty when the word was
// never indexed.
func (s *Store) GetBooksForWord(ctx context.Context, word string) ([]int, error) {
	cmd := s.b().Smembers().Key(wordKey(word)).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &store.Error{Op: store.OpGetBooks, Err: err}
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			// Skip malformed members rather than failing the lookup.
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
