package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/restrohub/api/internal/config"
	"github.com/restrohub/api/internal/database"
	"github.com/restrohub/api/internal/metrics"
	"github.com/restrohub/api/internal/router"
	"github.com/restrohub/api/internal/ws"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		JWTSecret:            "router-test-secret",
		Timezone:             "UTC",
		CORSOrigins:          []string{"http://localhost:5173"},
		DefaultGSTPercentage: 18,
	}
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	return cfg
}

// Routes exercised here never reach the database.
func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	return router.New(cfg, database.New(nil), nil, ws.NewHub(), metrics.New())
}

func TestHealth(t *testing.T) {
	r := newTestServer(t, newTestConfig())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body: got %s", rr.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestServer(t, newTestConfig())

	// One request so the HTTP collectors have a sample.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "/health") {
		t.Errorf("expected /health route label in metrics output")
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.Metrics.Enabled = false
	r := newTestServer(t, cfg)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestServer(t, newTestConfig())

	paths := []struct{ method, path string }{
		{"GET", "/users/me"},
		{"POST", "/restaurants/register"},
		{"POST", "/orders/restaurant/7d4f3c1e-0000-4000-8000-000000000001"},
		{"POST", "/bills/manual"},
		{"POST", "/bookings"},
		{"GET", "/employees/7d4f3c1e-0000-4000-8000-000000000001"},
		{"GET", "/reports/restaurant/7d4f3c1e-0000-4000-8000-000000000001/daily-sales"},
	}

	for _, p := range paths {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(p.method, p.path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", p.method, p.path, rr.Code)
		}
	}
}

func TestWebSocketRequiresToken(t *testing.T) {
	r := newTestServer(t, newTestConfig())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/ws/restaurants/7d4f3c1e-0000-4000-8000-000000000001/events", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestServer(t, newTestConfig())

	req := httptest.NewRequest("OPTIONS", "/bookings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin: got %q", got)
	}
}
