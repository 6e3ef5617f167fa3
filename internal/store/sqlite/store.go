// Package sqlite implements the relational storage backend over SQLite.
// Metadata lives in a books table keyed by book_id; the inverted index is a
// word_index table whose composite primary key makes inserts idempotent.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gutensearch/gutensearch/internal/store"
)

// Compile-time check: Store implements store.Store.
var _ store.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	book_id      INTEGER PRIMARY KEY,
	title        TEXT NOT NULL DEFAULT '',
	author       TEXT NOT NULL DEFAULT '',
	language     TEXT NOT NULL DEFAULT 'en',
	year         INTEGER,
	word_count   INTEGER NOT NULL DEFAULT 0,
	unique_words INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS word_index (
	word    TEXT NOT NULL,
	book_id INTEGER NOT NULL,
	PRIMARY KEY (word, book_id)
) WITHOUT ROWID;
`

// Store implements store.Store over a pooled database/sql handle.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path and initializes
// the schema. Use ":memory:" for an ephemeral store.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &store.Error{Op: store.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
