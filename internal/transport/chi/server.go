// Package chi implements the HTTP API surface over the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gutensearch/gutensearch/internal/domain"
	"github.com/gutensearch/gutensearch/internal/usecase/health"
	"github.com/gutensearch/gutensearch/internal/usecase/indexer"
)

// serviceName identifies this service in the health payload.
const serviceName = "gutensearch"

// IndexService is the indexing surface the server exposes.
type IndexService interface {
	IndexBook(ctx context.Context, bookID int) error
	Rebuild(ctx context.Context) (domain.RebuildReport, error)
	Status(ctx context.Context) (indexer.Status, error)
}

// SearchService evaluates keyword queries against the index.
type SearchService interface {
	Search(ctx context.Context, query string, filters domain.Filters, limit int) ([]domain.SearchResult, error)
}

// HealthService aggregates component health.
type HealthService interface {
	Check(ctx context.Context) health.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services to HTTP handlers.
type Server struct {
	index         IndexService
	search        SearchService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(index IndexService, search SearchService, healthSvc HealthService, logger *zap.Logger) *Server {
	s := &Server{
		index:  index,
		search: search,
		health: healthSvc,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, "empty_query"),
		// A missing book means the datalake lost it, not that the caller
		// asked for something invalid.
		sentinelHandler(domain.ErrBookNotFound, http.StatusInternalServerError, "book_not_found"),
		sentinelHandler(domain.ErrMetadataNotFound, http.StatusInternalServerError, "metadata_not_found"),
	}
	return s
}

// Routes mounts all handlers onto the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/status", s.HealthCheck)
	r.Post("/index/update/{book_id}", s.UpdateIndex)
	r.Post("/index/rebuild", s.RebuildIndex)
	r.Get("/index/status", s.IndexStatus)
	r.Get("/search", s.Search)
	r.Handle("/metrics", promhttp.Handler())
}

// HealthCheck handles GET /status.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Service: serviceName,
		Status:  string(report.Status),
		Checks:  checks,
	})
}

// UpdateIndex handles POST /index/update/{book_id}.
func (s *Server) UpdateIndex(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.Atoi(chirouter.URLParam(r, "book_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "book_id must be an integer")
		return
	}

	if err := s.index.IndexBook(r.Context(), bookID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{BookID: bookID, Status: "updated"})
}

// RebuildIndex handles POST /index/rebuild. Per-book failures are folded
// into the report; only a failure before the walk starts is an error.
func (s *Server) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	report, err := s.index.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rebuildResponse{
		Status:         "rebuilt",
		BooksProcessed: report.BooksProcessed,
		IndexedCount:   report.BooksProcessed,
		Failed:         report.Failed,
		ElapsedTime:    report.Elapsed.String(),
	})
}

// IndexStatus handles GET /index/status.
func (s *Server) IndexStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.index.Status(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	lastUpdate := "never"
	if !st.LastUpdate.IsZero() {
		lastUpdate = st.LastUpdate.UTC().Format("2006-01-02T15:04:05Z")
	}

	writeJSON(w, http.StatusOK, indexStatusResponse{
		BooksIndexed: st.Stats.BooksIndexed,
		TotalWords:   st.Stats.TotalWords,
		LastUpdate:   lastUpdate,
		IndexSizeMB:  st.Stats.IndexSizeMB,
	})
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	filters := domain.Filters{
		Author:   q.Get("author"),
		Language: q.Get("language"),
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "year must be an integer")
			return
		}
		filters.Year = &year
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	results, err := s.search.Search(r.Context(), query, filters, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Filters: filtersEcho(filters),
		Count:   len(results),
		Results: results,
	})
}

// filtersEcho reflects only the filters the caller actually set.
func filtersEcho(f domain.Filters) map[string]string {
	m := make(map[string]string)
	if f.Author != "" {
		m["author"] = f.Author
	}
	if f.Language != "" {
		m["language"] = f.Language
	}
	if f.Year != nil {
		m["year"] = strconv.Itoa(*f.Year)
	}
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrBookNotFound,
		domain.ErrMetadataNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
