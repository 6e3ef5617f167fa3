package textproc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gutensearch/gutensearch/internal/domain"
)

var (
	titleRe  = regexp.MustCompile(`(?i)title:\s*(.+)`)
	authorRe = regexp.MustCompile(`(?i)author:\s*(.+)`)
	langRe   = regexp.MustCompile(`(?i)language:\s*(.+)`)
	yearRe   = regexp.MustCompile(`(?i)(?:release date|posting date|release|date):\s*.*?(\d{4})`)
)

// ExtractMetadata parses a book header into metadata, best-effort. Missing
// fields stay empty rather than failing; language defaults to "en". Year is
// the first four-digit number on a date-labeled line, absent if none.
// WordCount and UniqueWords are filled in later by the index builder.
func ExtractMetadata(header string, bookID int) domain.BookMetadata {
	meta := domain.BookMetadata{
		BookID:   bookID,
		Language: "en",
	}

	if m := titleRe.FindStringSubmatch(header); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}
	if m := authorRe.FindStringSubmatch(header); m != nil {
		meta.Author = strings.TrimSpace(m[1])
	}
	if m := langRe.FindStringSubmatch(header); m != nil {
		meta.Language = strings.TrimSpace(m[1])
	}
	if m := yearRe.FindStringSubmatch(header); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			meta.Year = &y
		}
	}

	return meta
}
