package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tripsearch/internal/usecase/search"
)

// --- Stubs ---

type stubCatalog struct {
	mu       sync.Mutex
	records  map[listing.Category][]listing.Record
	matching map[listing.Category][]listing.Record
	filters  []request.Filters
	limits   []int
}

func (c *stubCatalog) Candidates(
	_ context.Context, cat listing.Category, f request.Filters,
) ([]listing.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, f)
	return c.records[cat], nil
}

func (c *stubCatalog) Matching(
	_ context.Context, cat listing.Category, _ string, limit int,
) ([]listing.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limits = append(c.limits, limit)
	return c.matching[cat], nil
}

func (c *stubCatalog) lastFilters() request.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters[len(c.filters)-1]
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, pingErr error) (*Server, *stubCatalog) {
	t.Helper()
	catalog := &stubCatalog{
		records: map[listing.Category][]listing.Record{
			listing.Property: {
				{"id": "p1", "title": "Lake View Lodge", "location": "Naivasha", "rating": 4.5, "price_per_night": 120.0},
				{"id": "p2", "title": "City Loft", "location": "Nairobi", "rating": 0.0},
			},
			listing.Tour: {
				{"id": "t1", "title": "Lake Nakuru Day Trip", "location": "Nakuru", "rating": 4.0, "price_per_adult": 80.0},
			},
		},
		matching: map[listing.Category][]listing.Record{
			listing.Property: {{"id": "p1", "title": "Lake View Lodge", "location": "Naivasha"}},
		},
	}
	search := searchuc.New(catalog, time.Second)
	health := healthuc.New(stubPinger{err: pingErr}, time.Second)
	return NewServer(search, health, zap.NewNop(), Options{}), catalog
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func routerFor(s *Server) http.Handler {
	r := gochi.NewRouter()
	s.Register(r)
	return r
}

// --- Search ---

func TestSearch_ReturnsRankedResults(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	assert.Equal(t, "lake", resp.Query)
	assert.Equal(t, request.DefaultLimit, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Total)

	first := resp.Results[0]
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, "property", first.Type)
	assert.Equal(t, "Lake View Lodge", first.Data["title"])
	assert.Contains(t, first.Highlights, "lake")
	assert.Greater(t, first.Score, resp.Results[1].Score)
	assert.Equal(t, "tour", resp.Results[1].Type)
}

func TestSearch_Pagination(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&limit=1&offset=1")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Limit)
	assert.Equal(t, 1, resp.Offset)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "t1", resp.Results[0].ID)
}

func TestSearch_OffsetPastEnd_EmptyArray(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&offset=50")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"results":[]`)
}

func TestSearch_ScopeLimitsCategories(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&type=tours")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "tour", resp.Results[0].Type)
}

func TestSearch_BindsFilters(t *testing.T) {
	s, catalog := newTestServer(t, nil)

	target := "/search?q=lake&type=properties&priceMin=50&priceMax=200.5&rating=4" +
		"&bedrooms=2&maxGuests=abc&propertyType=villa&location=Naivasha&amenities=wifi&amenities=pool"
	rr := serve(t, routerFor(s), target)
	require.Equal(t, http.StatusOK, rr.Code)

	f := catalog.lastFilters()
	require.NotNil(t, f.PriceMin)
	assert.InDelta(t, 50.0, *f.PriceMin, 1e-9)
	require.NotNil(t, f.PriceMax)
	assert.InDelta(t, 200.5, *f.PriceMax, 1e-9)
	require.NotNil(t, f.Rating)
	assert.InDelta(t, 4.0, *f.Rating, 1e-9)
	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 2, *f.Bedrooms)
	assert.Nil(t, f.MaxGuests, "malformed numeric filter is ignored")
	assert.Equal(t, "villa", f.PropertyType)
	assert.Equal(t, "Naivasha", f.Location)
	assert.Equal(t, []string{"wifi", "pool"}, f.Amenities)
}

func TestSearch_MalformedPaging_FallsBackToDefaults(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&limit=ten&offset=-3")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, request.DefaultLimit, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestSearch_InvalidType_400(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&type=hotels")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, CodeInvalidRequest, resp.Code)
	assert.Contains(t, resp.Message, "hotels")
}

func TestSearch_InvalidSort_400(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search?q=lake&sort=cheapest")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Suggestions & popular ---

func TestSuggestions(t *testing.T) {
	s, catalog := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search/suggestions?q=lake")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SuggestionsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, []string{"Lake View Lodge"}, resp.Suggestions)
	for _, l := range catalog.limits {
		assert.Equal(t, searchuc.DefaultSuggestionLimit, l)
	}
}

func TestSuggestions_LimitParam(t *testing.T) {
	s, catalog := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search/suggestions?q=lake&limit=3")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, catalog.limits)
	assert.Equal(t, 3, catalog.limits[0])
}

func TestSuggestions_ShortQuery_EmptyList(t *testing.T) {
	s, catalog := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search/suggestions?q=a")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"suggestions":[]}`, rr.Body.String())
	assert.Empty(t, catalog.limits)
}

func TestPopularSearches(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/search/popular")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp PopularResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, searchuc.PopularSearches(), resp.Searches)
}

// --- Health & metrics ---

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, tc.pingErr)

			rr := serve(t, routerFor(s), "/health")
			require.Equal(t, tc.wantStatus, rr.Code)

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tc.wantBody, resp.Status)
			assert.Equal(t, tc.wantBody, resp.Checks["catalog"].Status)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUnknownRoute_404JSON(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := serve(t, routerFor(s), "/collections")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"code":"not_found","message":"route not found"}`, rr.Body.String())
}

// --- Router & middleware ---

func TestNewRouter_AuthAndRequestID(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := NewRouter(s, RouterConfig{APIKeys: []string{"secret"}})

	rr := serve(t, h, "/search?q=lake")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = serve(t, h, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/search?q=lake", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestJSONRecoverer(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := JSONRecoverer(zap.NewNop())(panicking)

	rr := serve(t, h, "/search")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"internal error"}`, rr.Body.String())
}
