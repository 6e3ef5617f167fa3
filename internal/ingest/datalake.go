// Package ingest reads book text from the datalake produced by the ingestion
// pipeline. Each book is stored as a header/body pair of plain-text files.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gutensearch/gutensearch/internal/domain"
)

const (
	headerSuffix = "_header.txt"
	bodySuffix   = "_body.txt"
)

// Datalake locates book text under a directory laid out as
// <root>/<book_id>_header.txt and <root>/<book_id>_body.txt.
type Datalake struct {
	root string
}

// NewDatalake creates a datalake reader rooted at path.
func NewDatalake(path string) *Datalake {
	return &Datalake{root: path}
}

// Locate returns the header and body text for a book, or
// domain.ErrBookNotFound when either file is missing.
func (d *Datalake) Locate(ctx context.Context, bookID int) (header, body string, err error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	headerBytes, err := os.ReadFile(d.path(bookID, headerSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("book %d: %w", bookID, domain.ErrBookNotFound)
		}
		return "", "", fmt.Errorf("read header for book %d: %w", bookID, err)
	}

	bodyBytes, err := os.ReadFile(d.path(bookID, bodySuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("book %d: %w", bookID, domain.ErrBookNotFound)
		}
		return "", "", fmt.Errorf("read body for book %d: %w", bookID, err)
	}

	return string(headerBytes), string(bodyBytes), nil
}

// ListKnownIDs enumerates every book id with a header file in the datalake,
// sorted ascending.
func (d *Datalake) ListKnownIDs(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list datalake %s: %w", d.root, err)
	}

	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), headerSuffix)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}

// Ping verifies the datalake directory is reachable.
func (d *Datalake) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(d.root); err != nil {
		return fmt.Errorf("datalake %s: %w", d.root, err)
	}
	return nil
}

func (d *Datalake) path(bookID int, suffix string) string {
	return filepath.Join(d.root, strconv.Itoa(bookID)+suffix)
}
