package chi

import "github.com/gutensearch/gutensearch/internal/domain"

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Service string            `json:"service"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
}

type updateResponse struct {
	BookID int    `json:"book_id"`
	Status string `json:"status"`
}

type rebuildResponse struct {
	Status         string `json:"status"`
	BooksProcessed int    `json:"books_processed"`
	IndexedCount   int    `json:"indexed_count"`
	Failed         int    `json:"failed"`
	ElapsedTime    string `json:"elapsed_time"`
}

type indexStatusResponse struct {
	BooksIndexed int     `json:"books_indexed"`
	TotalWords   int     `json:"total_words"`
	LastUpdate   string  `json:"last_update"`
	IndexSizeMB  float64 `json:"index_size_mb"`
}

type searchResponse struct {
	Query   string                `json:"query"`
	Filters map[string]string     `json:"filters"`
	Count   int                   `json:"count"`
	Results []domain.SearchResult `json:"results"`
}
