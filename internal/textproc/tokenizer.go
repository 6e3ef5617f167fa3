// Package textproc provides the text normalization used by both indexing and
// querying. Tokenization must be identical on both sides: the query vocabulary
// has to line up with the indexed vocabulary.
package textproc

import (
	"regexp"
	"sort"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-z]+`)

// minTokenLen filters out stop-word noise like "a", "of", "is".
const minTokenLen = 3

// Tokenize lowercases text, extracts maximal runs of ASCII letters, drops
// runs shorter than three characters, and returns the distinct tokens sorted.
func Tokenize(text string) []string {
	seen := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) < minTokenLen {
			continue
		}
		seen[w] = struct{}{}
	}

	tokens := make([]string, 0, len(seen))
	for w := range seen {
		tokens = append(tokens, w)
	}
	sort.Strings(tokens)
	return tokens
}

// CountWords returns the number of whitespace-delimited fields in text.
// This is the raw word count stored in book metadata, deliberately computed
// before any normalization.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
