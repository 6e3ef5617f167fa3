package indexer

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/gutensearch/gutensearch/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	metadata map[int]domain.BookMetadata
	index    map[string]map[int]struct{}

	storeErr error
	addErr   error
	clearErr error
	statsFn  func() (domain.IndexStats, error)

	addCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		metadata: make(map[int]domain.BookMetadata),
		index:    make(map[string]map[int]struct{}),
	}
}

func (m *mockStore) StoreBookMetadata(_ context.Context, meta domain.BookMetadata) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.metadata[meta.BookID] = meta
	return nil
}

func (m *mockStore) AddWordToIndex(_ context.Context, word string, bookID int) error {
	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	if m.index[word] == nil {
		m.index[word] = make(map[int]struct{})
	}
	m.index[word][bookID] = struct{}{}
	return nil
}

func (m *mockStore) ClearIndex(_ context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.metadata = make(map[int]domain.BookMetadata)
	m.index = make(map[string]map[int]struct{})
	return nil
}

func (m *mockStore) Stats(_ context.Context) (domain.IndexStats, error) {
	if m.statsFn != nil {
		return m.statsFn()
	}
	return domain.IndexStats{BooksIndexed: len(m.metadata), TotalWords: len(m.index)}, nil
}

func (m *mockStore) booksFor(word string) []int {
	var ids []int
	for id := range m.index[word] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type mockSource struct {
	books map[int][2]string // id -> {header, body}
	ids   []int
}

func (m *mockSource) Locate(_ context.Context, bookID int) (string, string, error) {
	b, ok := m.books[bookID]
	if !ok {
		return "", "", domain.ErrBookNotFound
	}
	return b[0], b[1], nil
}

func (m *mockSource) ListKnownIDs(_ context.Context) ([]int, error) {
	return m.ids, nil
}

const prideHeader = "Title: Pride and Prejudice\nAuthor: Jane Austen\nRelease Date: June 1998\nLanguage: en"

func prideSource() *mockSource {
	return &mockSource{
		books: map[int][2]string{
			1342: {prideHeader, "It is a truth universally acknowledged that a single man"},
		},
		ids: []int{1342},
	}
}

// --- Tests ---

func TestIndexBook(t *testing.T) {
	store := newMockStore()
	svc := New(store, prideSource(), zap.NewNop())

	if err := svc.IndexBook(context.Background(), 1342); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := store.metadata[1342]
	if meta.Title != "Pride and Prejudice" || meta.Author != "Jane Austen" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	// Raw whitespace fields of the body, not the normalized set.
	if meta.WordCount != 10 {
		t.Errorf("WordCount = %d, want 10", meta.WordCount)
	}
	// Distinct body tokens of length > 2.
	bodyTokens := []string{"acknowledged", "man", "single", "that", "truth", "universally"}
	if meta.UniqueWords != len(bodyTokens) {
		t.Errorf("UniqueWords = %d, want %d", meta.UniqueWords, len(bodyTokens))
	}

	// Vocabulary round-trip: every body and title token maps back to the book.
	for _, w := range append([]string{"pride", "prejudice"}, bodyTokens...) {
		if got := store.booksFor(w); !reflect.DeepEqual(got, []int{1342}) {
			t.Errorf("booksFor(%q) = %v, want [1342]", w, got)
		}
	}

	// Title tokens are indexed but excluded from UniqueWords.
	if got := store.booksFor("prejudice"); len(got) != 1 {
		t.Error("title token not indexed")
	}
}

func TestIndexBook_Idempotent(t *testing.T) {
	store := newMockStore()
	svc := New(store, prideSource(), zap.NewNop())
	ctx := context.Background()

	if err := svc.IndexBook(ctx, 1342); err != nil {
		t.Fatalf("first index: %v", err)
	}
	metaOnce := store.metadata[1342]
	indexOnce := len(store.index)

	if err := svc.IndexBook(ctx, 1342); err != nil {
		t.Fatalf("second index: %v", err)
	}
	if !reflect.DeepEqual(store.metadata[1342], metaOnce) {
		t.Error("metadata changed on re-index")
	}
	if len(store.index) != indexOnce {
		t.Errorf("word count changed on re-index: %d != %d", len(store.index), indexOnce)
	}
	for word, ids := range store.index {
		if len(ids) != 1 {
			t.Errorf("word %q has %d members, want 1", word, len(ids))
		}
	}
}

func TestIndexBook_NotFound(t *testing.T) {
	svc := New(newMockStore(), prideSource(), zap.NewNop())
	err := svc.IndexBook(context.Background(), 9999)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestIndexBook_StoreError(t *testing.T) {
	store := newMockStore()
	store.storeErr = errors.New("backend down")
	svc := New(store, prideSource(), zap.NewNop())

	if err := svc.IndexBook(context.Background(), 1342); err == nil {
		t.Fatal("expected error")
	}
	if store.addCalls != 0 {
		t.Error("index writes must not happen when metadata write fails")
	}
}

func TestRebuild(t *testing.T) {
	store := newMockStore()
	source := &mockSource{
		books: map[int][2]string{
			1: {"Title: Alpha", "alpha body text"},
			2: {"Title: Beta", "beta body text"},
			3: {"Title: Gamma", "gamma body text"},
		},
		ids: []int{1, 2, 3},
	}
	svc := New(store, source, zap.NewNop())

	report, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.BooksProcessed != 3 || report.Failed != 0 {
		t.Errorf("report = %+v, want 3 processed, 0 failed", report)
	}
	if len(store.metadata) != 3 {
		t.Errorf("stored %d metadata records, want 3", len(store.metadata))
	}
}

func TestRebuild_OneUnresolvableBook(t *testing.T) {
	store := newMockStore()
	source := &mockSource{
		books: map[int][2]string{
			1: {"Title: Alpha", "alpha body"},
			3: {"Title: Gamma", "gamma body"},
		},
		ids: []int{1, 2, 3}, // book 2 is in the catalog but has no text
	}
	svc := New(store, source, zap.NewNop())

	report, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("rebuild must not fail on per-book errors: %v", err)
	}
	if report.BooksProcessed != 2 {
		t.Errorf("BooksProcessed = %d, want 2", report.BooksProcessed)
	}
	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
}

func TestRebuild_ClearsExistingIndex(t *testing.T) {
	store := newMockStore()
	store.metadata[99] = domain.BookMetadata{BookID: 99, Title: "Stale"}
	store.index["stale"] = map[int]struct{}{99: {}}

	source := &mockSource{
		books: map[int][2]string{1: {"Title: Fresh", "fresh body"}},
		ids:   []int{1},
	}
	svc := New(store, source, zap.NewNop())

	if _, err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.metadata[99]; ok {
		t.Error("stale metadata survived rebuild")
	}
	if len(store.booksFor("stale")) != 0 {
		t.Error("stale index entry survived rebuild")
	}
}

func TestRebuild_ClearError(t *testing.T) {
	store := newMockStore()
	store.clearErr = errors.New("backend down")
	svc := New(store, prideSource(), zap.NewNop())

	if _, err := svc.Rebuild(context.Background()); err == nil {
		t.Fatal("expected error when clear fails")
	}
}

func TestStatus(t *testing.T) {
	store := newMockStore()
	svc := New(store, prideSource(), zap.NewNop())
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.LastUpdate.IsZero() {
		t.Error("LastUpdate must be zero before any indexing")
	}

	if err := svc.IndexBook(ctx, 1342); err != nil {
		t.Fatalf("index: %v", err)
	}
	st, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LastUpdate.IsZero() {
		t.Error("LastUpdate must be set after indexing")
	}
	if st.Stats.BooksIndexed != 1 {
		t.Errorf("BooksIndexed = %d, want 1", st.Stats.BooksIndexed)
	}
}

func TestStatus_StatsError(t *testing.T) {
	store := newMockStore()
	store.statsFn = func() (domain.IndexStats, error) {
		return domain.IndexStats{}, errors.New("backend down")
	}
	svc := New(store, prideSource(), zap.NewNop())

	if _, err := svc.Status(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		a, b, want []string
	}{
		{nil, nil, []string{}},
		{[]string{"alpha"}, nil, []string{"alpha"}},
		{[]string{"alpha", "beta"}, []string{"beta", "gamma"}, []string{"alpha", "beta", "gamma"}},
		{[]string{"pride"}, []string{"prejudice"}, []string{"prejudice", "pride"}},
	}
	for _, tc := range tests {
		if got := union(tc.a, tc.b); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("union(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
