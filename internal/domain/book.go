package domain

// BookMetadata is the per-book record kept by the storage backend.
// One record per BookID; re-indexing overwrites all fields.
type BookMetadata struct {
	BookID      int    `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	Year        *int   `json:"year"`
	WordCount   int    `json:"word_count"`
	UniqueWords int    `json:"unique_words"`
}

// SearchResult is a single ranked hit. Score counts the query tokens that
// appear as substrings of title+author; Matches lists those tokens.
type SearchResult struct {
	BookID   int      `json:"book_id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Language string   `json:"language"`
	Year     *int     `json:"year"`
	Score    int      `json:"score"`
	Matches  []string `json:"matches"`
}

// Filters narrows search results. All set filters must pass.
// Author is a case-insensitive substring match, Language a case-insensitive
// exact match, Year an exact match. Nil/empty fields impose no constraint.
type Filters struct {
	Author   string
	Language string
	Year     *int
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Author == "" && f.Language == "" && f.Year == nil
}
