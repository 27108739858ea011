// Package chi exposes the search pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	healthuc "github.com/bazaar-labs/bazaarsearch/internal/usecase/health"
	searchuc "github.com/bazaar-labs/bazaarsearch/internal/usecase/search"
)

// Error codes returned in the response body.
const (
	codeMissingQuery   = "missing_query"
	codeBadRequest     = "bad_request"
	codeProviderError  = "embedding_provider_error"
	codeIntegrityError = "catalog_integrity_error"
	codeInternalError  = "internal_error"
	codeUnauthorized   = "unauthorized"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes search, health, and metrics requests.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingQuery, http.StatusBadRequest, codeMissingQuery),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrRowOutOfRange, http.StatusInternalServerError, codeIntegrityError),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.SearchProducts)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchProducts handles GET /search?q=...
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]productResponse, len(results))
	for i, p := range results {
		items[i] = productToResponse(p)
	}

	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// productResponse is the wire shape of one catalog record.
type productResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	ProductType string `json:"product_type"`
	Color       string `json:"color"`
	Occasion    string `json:"occasion"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func productToResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		ProductType: p.ProductType,
		Color:       p.Color,
		Occasion:    p.Occasion,
		Title:       p.Title,
		Description: p.Description,
	}
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
		domain.ErrMissingQuery,
		domain.ErrEmbeddingProviderError,
		domain.ErrRowOutOfRange,
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
