package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"resumeforge-utils/internal/config"
)

func limitedEcho(t *testing.T, rps float64, burst int) *echo.Echo {
	t.Helper()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.RateLimit.RequestsPerSecond = rps
	cfg.RateLimit.Burst = burst

	e := echo.New()
	e.Use(NewRateLimiter(cfg).Middleware())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	e := limitedEcho(t, 1, 3)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i, rec.Code)
		}
	}
}

func TestRateLimiterBlocksBeyondBurst(t *testing.T) {
	e := limitedEcho(t, 1, 2)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third request should be throttled, got %d", last)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	e := limitedEcho(t, 1, 1)

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first client should pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("a fresh client should not inherit another client's bucket, got %d", rec.Code)
	}
}
