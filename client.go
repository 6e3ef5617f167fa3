// Package gutensearch is the embedded entry point: the same indexing and
// search pipeline the HTTP server exposes, wired for in-process use.
package gutensearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/ingest"
	"github.com/gutensearch/gutensearch/internal/store"
	storeRedis "github.com/gutensearch/gutensearch/internal/store/redis"
	storeSqlite "github.com/gutensearch/gutensearch/internal/store/sqlite"
	indexeruc "github.com/gutensearch/gutensearch/internal/usecase/indexer"
	searchuc "github.com/gutensearch/gutensearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// BookMetadata describes one indexed book.
type BookMetadata = domain.BookMetadata

// SearchResult is one scored search hit.
type SearchResult = domain.SearchResult

// Filters narrows search results by metadata. Zero-value fields are ignored.
type Filters = domain.Filters

// RebuildReport summarizes a full rebuild run.
type RebuildReport = domain.RebuildReport

// IndexStatus reports index-level counters.
type IndexStatus struct {
	BooksIndexed int
	TotalWords   int
	IndexSizeMB  float64
	LastUpdate   time.Time
}

// ErrBookNotFound is returned when the datalake has no files for a book id.
var ErrBookNotFound = domain.ErrBookNotFound

// ErrEmptyQuery is returned for a blank search query.
var ErrEmptyQuery = domain.ErrEmptyQuery

// Client is the gutensearch SDK entry point.
type Client struct {
	store     store.Store
	indexSvc  *indexeruc.Service
	searchSvc *searchuc.Service
}

// New creates a gutensearch Client and connects to the storage backend.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:           "sqlite",
		sqlitePath:       "gutensearch.db",
		datalakePath:     "datalake",
		readinessTimeout: defaultReadinessTimeout,
		logger:           zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	backend, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := backend.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		backend.Close()
		return nil, fmt.Errorf("gutensearch: storage not ready: %w", err)
	}

	datalake := ingest.NewDatalake(cfg.datalakePath)

	return &Client{
		store:     backend,
		indexSvc:  indexeruc.New(backend, datalake, cfg.logger),
		searchSvc: searchuc.New(backend).WithDefaultLimit(cfg.defaultLimit),
	}, nil
}

func createStore(cfg *clientConfig) (store.Store, error) {
	switch cfg.driver {
	case "redis":
		if len(cfg.addrs) == 0 {
			return nil, errors.New("gutensearch: redis address required (use WithRedis)")
		}
		s, err := storeRedis.NewStore(storeRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("gutensearch: create redis store: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := storeSqlite.NewStore(cfg.sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("gutensearch: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("gutensearch: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks storage connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// IndexBook indexes a single book from the datalake.
func (c *Client) IndexBook(ctx context.Context, bookID int) error {
	if err := c.indexSvc.IndexBook(ctx, bookID); err != nil {
		return fmt.Errorf("index book %d: %w", bookID, err)
	}
	return nil
}

// Rebuild clears the index and re-indexes every book in the datalake.
// Per-book failures are counted in the report, not returned as errors.
func (c *Client) Rebuild(ctx context.Context) (RebuildReport, error) {
	report, err := c.indexSvc.Rebuild(ctx)
	if err != nil {
		return RebuildReport{}, fmt.Errorf("rebuild: %w", err)
	}
	return report, nil
}

// Status reports index counters and the time of the last index write.
func (c *Client) Status(ctx context.Context) (IndexStatus, error) {
	st, err := c.indexSvc.Status(ctx)
	if err != nil {
		return IndexStatus{}, fmt.Errorf("status: %w", err)
	}
	return IndexStatus{
		BooksIndexed: st.Stats.BooksIndexed,
		TotalWords:   st.Stats.TotalWords,
		IndexSizeMB:  st.Stats.IndexSizeMB,
		LastUpdate:   st.LastUpdate,
	}, nil
}

// Search evaluates a keyword query. limit <= 0 falls back to the client's
// default limit; zero default means unlimited.
func (c *Client) Search(
	ctx context.Context, query string, filters Filters, limit int,
) ([]SearchResult, error) {
	results, err := c.searchSvc.Search(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}
