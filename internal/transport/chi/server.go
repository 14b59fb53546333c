// Package chi implements the HTTP surface of the search API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	authoruc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/author"
	healthuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/health"
	plotuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/plot"
	searchuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search engine over HTTP.
type Server struct {
	search        *searchuc.Service
	plot          *plotuc.Service
	authors       *authoruc.Service
	health        *healthuc.Service
	defaults      SearchDefaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	plot *plotuc.Service,
	authors *authoruc.Service,
	health *healthuc.Service,
	defaults SearchDefaults,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		plot:     plot,
		authors:  authors,
		health:   health,
		defaults: defaults,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrAuthorNotFound, http.StatusNotFound, codeAuthorNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search_articles", s.SearchArticles)
	r.Post("/search_authors", s.SearchAuthors)
	r.Post("/get_author", s.GetAuthor)
	r.Post("/get_author_by_id", s.GetAuthorByID)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchArticles handles POST /search_articles.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	var req searchArticlesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := req.toQuery(s.defaults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.search.SearchArticles(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := searchArticlesResponse{Articles: articlesToAPI(result.Articles)}

	if q.WithPlot() {
		data, err := s.plot.Assemble(r.Context(), q.Text(), result.QueryVector, result.PlotPool)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		resp.Plot = data
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchAuthors handles POST /search_authors.
func (s *Server) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	var req searchAuthorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := req.toQuery(s.defaults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.search.SearchAuthors(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ranked, err := s.authors.ResolveRanked(r.Context(), result.Authors)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := searchAuthorsResponse{Authors: rankedToAPI(ranked)}

	if q.WithEvidence() {
		resp.Evidence = articlesToAPI(result.Evidence)
	}

	if q.WithPlot() {
		data, err := s.plot.Assemble(r.Context(), q.Text(), result.QueryVector, result.PlotPool)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		resp.Plot = data
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetAuthor handles POST /get_author.
func (s *Server) GetAuthor(w http.ResponseWriter, r *http.Request) {
	var req getAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.authors.GetByName(r.Context(), req.FirstName, req.LastName, req.SinceYear)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToAPI(profile))
}

// GetAuthorByID handles POST /get_author_by_id.
func (s *Server) GetAuthorByID(w http.ResponseWriter, r *http.Request) {
	var req getAuthorByIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.authors.GetByID(r.Context(), req.AuthorID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToAPI(profile))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrAuthorNotFound,
		domain.ErrValidation,
		domain.ErrEmbeddingProviderError,
		domain.ErrStoreUnavailable,
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
		// Validation failures carry field-level detail worth exposing.
		if errors.Is(sentinel, domain.ErrValidation) {
			msg = err.Error()
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
