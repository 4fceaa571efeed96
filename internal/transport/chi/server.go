package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tripsearch/internal/domain"
	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/sortmode"
	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tripsearch/internal/usecase/search"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeNotFound       = "not_found"
	CodeInternalError  = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Options tune request defaults.
type Options struct {
	DefaultPageSize int
	SuggestionLimit int
}

// Server serves the search HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = request.DefaultLimit
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = searchuc.DefaultSuggestionLimit
	}
	s := &Server{
		search: search,
		health: health,
		logger: logger,
		opts:   opts,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest),
		sentinelHandler(domain.ErrUnknownCategory, http.StatusBadRequest, CodeInvalidRequest),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/search", s.Search)
	r.Get("/search/suggestions", s.Suggestions)
	r.Get("/search/popular", s.PopularSearches)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
}

// --- Response bodies ---

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchResultItem is one ranked listing.
type SearchResultItem struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Score      float64        `json:"score"`
	Data       listing.Record `json:"data"`
	Highlights []string       `json:"highlights"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Results []SearchResultItem `json:"results"`
}

// SuggestionsResponse is the body of GET /search/suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// PopularResponse is the body of GET /search/popular.
type PopularResponse struct {
	Searches []string `json:"searches"`
}

// HealthCheckItem is one component probe.
type HealthCheckItem struct {
	Status    string  `json:"status"`
	LatencyMS float64 `json:"latency_ms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string                     `json:"status"`
	Checks map[string]HealthCheckItem `json:"checks"`
}

// --- Handlers ---

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var p searchParams
	p.bind(q)

	limit := s.opts.DefaultPageSize
	if p.Limit != nil && *p.Limit > 0 {
		limit = *p.Limit
	}
	offset := 0
	if p.Offset != nil {
		offset = *p.Offset
	}

	req, err := request.New(
		q.Get("q"),
		listing.Scope(q.Get("type")),
		p.filters(q),
		sortmode.Mode(q.Get("sort")),
		limit, offset,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, total := s.search.Search(r.Context(), &req)

	items := make([]SearchResultItem, len(page))
	for i := range page {
		items[i] = searchResultToItem(&page[i])
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query(),
		Total:   total,
		Limit:   req.Limit(),
		Offset:  req.Offset(),
		Results: items,
	})
}

// Suggestions handles GET /search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := s.opts.SuggestionLimit
	var requested *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &requested); err == nil &&
		requested != nil && *requested > 0 {
		limit = *requested
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: s.search.Suggestions(r.Context(), q.Get("q"), limit),
	})
}

// PopularSearches handles GET /search/popular.
func (s *Server) PopularSearches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PopularResponse{Searches: searchuc.PopularSearches()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]HealthCheckItem, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = HealthCheckItem{
			Status:    string(v.Result),
			LatencyMS: float64(v.Latency.Microseconds()) / 1000,
		}
	}

	httpStatus := http.StatusOK
	if !report.IsHealthy() {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Query binding ---

// searchParams are the typed query parameters of GET /search. A value that
// fails to parse is treated as absent.
type searchParams struct {
	Limit     *int
	Offset    *int
	PriceMin  *float64
	PriceMax  *float64
	Rating    *float64
	Bedrooms  *int
	MaxGuests *int
	Amenities []string
}

func (p *searchParams) bind(q url.Values) {
	bindOptional(q, "limit", &p.Limit)
	bindOptional(q, "offset", &p.Offset)
	bindOptional(q, "priceMin", &p.PriceMin)
	bindOptional(q, "priceMax", &p.PriceMax)
	bindOptional(q, "rating", &p.Rating)
	bindOptional(q, "bedrooms", &p.Bedrooms)
	bindOptional(q, "maxGuests", &p.MaxGuests)
	bindOptional(q, "amenities", &p.Amenities)
}

func (p *searchParams) filters(q url.Values) request.Filters {
	return request.Filters{
		PriceMin:     p.PriceMin,
		PriceMax:     p.PriceMax,
		Rating:       p.Rating,
		Category:     q.Get("category"),
		Location:     q.Get("location"),
		Bedrooms:     p.Bedrooms,
		MaxGuests:    p.MaxGuests,
		PropertyType: q.Get("propertyType"),
		Amenities:    p.Amenities,
	}
}

// bindOptional binds a form-style exploded query parameter into dest, leaving
// dest at its zero value when the parameter is missing or malformed.
func bindOptional[T any](q url.Values, name string, dest *T) {
	var v T
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return
	}
	*dest = v
}

// --- Encoding ---

func searchResultToItem(r *result.Result) SearchResultItem {
	highlights := r.Highlights()
	if highlights == nil {
		highlights = []string{}
	}
	return SearchResultItem{
		ID:         r.ID(),
		Type:       string(r.Category()),
		Score:      r.Score(),
		Data:       r.Data(),
		Highlights: highlights,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The message is the full error text: request errors carry no internals.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
