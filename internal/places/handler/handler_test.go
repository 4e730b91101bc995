package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"placelookup_backend/internal/places/client"
	"placelookup_backend/internal/places/service"
	"placelookup_backend/internal/ratelimit"
	"placelookup_backend/platform/httpkit"
	"placelookup_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter mounts the places routes the way the module does, backed by a
// fake places upstream and a small rate limit budget.
func newTestRouter(t *testing.T, upstream http.HandlerFunc, maxRequests int) *gin.Engine {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := logger.New("test")
	apiClient := client.New("test-key", log,
		client.WithGeocodeBaseURL(srv.URL),
		client.WithPlacesBaseURL(srv.URL),
	)
	h := NewHandler(service.New(apiClient, "test-key", log))

	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{Window: time.Minute, Max: maxRequests})

	engine := gin.New()
	group := engine.Group("/api/v1/places")
	group.Use(httpkit.RateLimit(limiter, log))
	group.POST("/lookup", h.Lookup)
	group.GET("/photo", h.Photo)
	return engine
}

func noUpstream(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	}
}

func TestLookup_MissingAddressReturns400(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 100)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places/lookup", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookup_MalformedBodyReturns400(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 100)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places/lookup", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookup_NegativeSelectedIndexReturns400(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 100)

	body := `{"address": "somewhere", "selectedIndex": -1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/places/lookup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPhoto_MissingNameReturns400(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 100)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPhoto_ForeignPrefixReturns400(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 100)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo?photoName=notplaces/abc", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPhoto_NameAliasAccepted(t *testing.T) {
	engine := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xFF, 0xD8})
	}, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo?name=places/X/photos/p1", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPhoto_SuccessSetsCacheAndContentType(t *testing.T) {
	engine := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xFF, 0xD8})
	}, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo?photoName=places/X/photos/p1", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Fatalf("expected content type image/jpeg, got %q", got)
	}
	cache := rec.Header().Get("Cache-Control")
	if !strings.Contains(cache, "public") || !strings.Contains(cache, "max-age=86400") {
		t.Fatalf("expected a public 24h cache directive, got %q", cache)
	}
}

func TestRateLimit_RejectsOverBudgetWith429(t *testing.T) {
	engine := newTestRouter(t, noUpstream(t), 1)

	first := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, first)
	if rec.Code == http.StatusTooManyRequests {
		t.Fatalf("first request should not be throttled, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/places/photo", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the second request, got %d", rec.Code)
	}
}
