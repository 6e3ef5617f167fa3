package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/gutensearch/gutensearch/internal/domain"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_NoAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- books.go tests ---

func TestStoreBookMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	year := 1813
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			if cmd[0] != "HSET" || cmd[1] != "book:1342" {
				return false
			}
			fields := map[string]string{}
			for i := 2; i+1 < len(cmd); i += 2 {
				fields[cmd[i]] = cmd[i+1]
			}
			return fields["title"] == "Pride and Prejudice" &&
				fields["author"] == "Jane Austen" &&
				fields["language"] == "en" &&
				fields["year"] == "1813" &&
				fields["word_count"] == "120000" &&
				fields["unique_words"] == "6000"
		})).
		Return(mock.Result(mock.RedisInt64(6)))

	s := NewStoreForTest(c)
	err := s.StoreBookMetadata(context.Background(), domain.BookMetadata{
		BookID:      1342,
		Title:       "Pride and Prejudice",
		Author:      "Jane Austen",
		Language:    "en",
		Year:        &year,
		WordCount:   120000,
		UniqueWords: 6000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetBookMetadata_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "book:1342")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"title":        mock.RedisString("Pride and Prejudice"),
			"author":       mock.RedisString("Jane Austen"),
			"language":     mock.RedisString("en"),
			"year":         mock.RedisString("1813"),
			"word_count":   mock.RedisString("120000"),
			"unique_words": mock.RedisString("6000"),
		})))

	s := NewStoreForTest(c)
	meta, err := s.GetBookMetadata(context.Background(), 1342)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.BookID != 1342 || meta.Title != "Pride and Prejudice" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Year == nil || *meta.Year != 1813 {
		t.Errorf("Year = %v, want 1813", meta.Year)
	}
	if meta.WordCount != 120000 || meta.UniqueWords != 6000 {
		t.Errorf("counts = %d/%d, want 120000/6000", meta.WordCount, meta.UniqueWords)
	}
}

func TestGetBookMetadata_MissingYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "book:11")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"title":        mock.RedisString("Alice in Wonderland"),
			"author":       mock.RedisString("Lewis Carroll"),
			"language":     mock.RedisString("en"),
			"year":         mock.RedisString(""),
			"word_count":   mock.RedisString("27000"),
			"unique_words": mock.RedisString("2600"),
		})))

	s := NewStoreForTest(c)
	meta, err := s.GetBookMetadata(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Year != nil {
		t.Errorf("Year = %v, want absent", *meta.Year)
	}
}

func TestGetBookMetadata_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "book:999")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})))

	s := NewStoreForTest(c)
	_, err := s.GetBookMetadata(context.Background(), 999)
	if !errors.Is(err, domain.ErrMetadataNotFound) {
		t.Fatalf("expected ErrMetadataNotFound, got %v", err)
	}
}

// --- words.go tests ---

func TestAddWordToIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SADD", "word:pride", "1342")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.AddWordToIndex(context.Background(), "pride", 1342); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddWordToIndex_AlreadyMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// SADD of an existing member returns 0; still a success.
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SADD", "word:pride", "1342")).
		Return(mock.Result(mock.RedisInt64(0)))

	s := NewStoreForTest(c)
	if err := s.AddWordToIndex(context.Background(), "pride", 1342); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetBooksForWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SMEMBERS", "word:alice")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("11"),
			mock.RedisString("28885"),
		)))

	s := NewStoreForTest(c)
	ids, err := s.GetBooksForWord(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
}

func TestGetBooksForWord_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SMEMBERS", "word:xyzneverexistingword")).
		Return(mock.Result(mock.RedisArray()))

	s := NewStoreForTest(c)
	ids, err := s.GetBooksForWord(context.Background(), "xyzneverexistingword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

// --- admin.go tests ---

func TestClearIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && contains(cmd, "book:*")
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0),
			mock.RedisArray(mock.RedisString("book:1"), mock.RedisString("book:2")),
		)))
	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "book:1", "book:2")).
		Return(mock.Result(mock.RedisInt64(2)))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && contains(cmd, "word:*")
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0),
			mock.RedisArray(mock.RedisString("word:pride")),
		)))
	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "word:pride")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.ClearIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearIndex_EmptyIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// No keys found: DEL must not be issued.
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0),
			mock.RedisArray(),
		))).
		Times(2)

	s := NewStoreForTest(c)
	if err := s.ClearIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUsedMemoryMB(t *testing.T) {
	info := "# Memory\r\nused_memory:2097152\r\nused_memory_human:2.00M\r\n"
	if got := usedMemoryMB(info); got != 2.0 {
		t.Errorf("usedMemoryMB = %v, want 2.0", got)
	}
}

func TestUsedMemoryMB_Missing(t *testing.T) {
	if got := usedMemoryMB("# Memory\r\n"); got != 0 {
		t.Errorf("usedMemoryMB = %v, want 0", got)
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
