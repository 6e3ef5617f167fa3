// Package search evaluates keyword queries with metadata filters against the
// inverted index.
//
// Retrieval and scoring are deliberately decoupled: candidates come from the
// token index (body and title vocabulary, OR across tokens), while the score
// re-derives matches as substring hits on title+author only. A candidate
// retrieved through a body-text match can legitimately score zero; that is
// part of the observed contract, not a bug to fix.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/textproc"
)

// Service is the query engine. Stateless; every call is evaluated against
// current backend contents.
type Service struct {
	store        Store
	defaultLimit int
}

// New creates a search service.
func New(store Store) *Service {
	return &Service{store: store}
}

// WithDefaultLimit sets the limit applied when a request does not carry one.
// Zero keeps requests unlimited.
func (s *Service) WithDefaultLimit(limit int) *Service {
	if limit > 0 {
		s.defaultLimit = limit
	}
	return s
}

// Search evaluates a query. A blank query is domain.ErrEmptyQuery; a query
// whose tokens all fall below the tokenizer's threshold is a valid search
// with zero results. limit <= 0 means unlimited.
func (s *Service) Search(
	ctx context.Context, query string, filters domain.Filters, limit int,
) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}

	tokens := textproc.Tokenize(query)
	if len(tokens) == 0 {
		return []domain.SearchResult{}, nil
	}

	candidates, err := s.candidates(ctx, tokens)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, bookID := range candidates {
		meta, err := s.store.GetBookMetadata(ctx, bookID)
		if err != nil {
			// An index entry can outlive its metadata mid-rebuild; skip.
			if errors.Is(err, domain.ErrMetadataNotFound) {
				continue
			}
			return nil, fmt.Errorf("metadata for book %d: %w", bookID, err)
		}
		if !matchesFilters(meta, filters) {
			continue
		}
		results = append(results, score(meta, tokens))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].BookID < results[j].BookID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// candidates unions the book-id sets of all query tokens: a book qualifies
// when it matches ANY token.
func (s *Service) candidates(ctx context.Context, tokens []string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, token := range tokens {
		ids, err := s.store.GetBooksForWord(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("books for word %q: %w", token, err)
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// matchesFilters applies all set filters; every one must pass.
func matchesFilters(meta domain.BookMetadata, f domain.Filters) bool {
	if f.Author != "" && !strings.Contains(strings.ToLower(meta.Author), strings.ToLower(f.Author)) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(meta.Language, f.Language) {
		return false
	}
	if f.Year != nil && (meta.Year == nil || *meta.Year != *f.Year) {
		return false
	}
	return true
}

// score counts the query tokens that are substrings of title+author.
func score(meta domain.BookMetadata, tokens []string) domain.SearchResult {
	bookText := strings.ToLower(meta.Title + " " + meta.Author)

	matches := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.Contains(bookText, token) {
			matches = append(matches, token)
		}
	}

	return domain.SearchResult{
		BookID:   meta.BookID,
		Title:    meta.Title,
		Author:   meta.Author,
		Language: meta.Language,
		Year:     meta.Year,
		Score:    len(matches),
		Matches:  matches,
	}
}
