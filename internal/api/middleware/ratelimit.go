package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/pkg/models"

	"github.com/labstack/echo/v4"
)

// clientLimiter pairs a token bucket with its last-seen time so stale
// clients can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP using a token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

// NewRateLimiter creates a per-client rate limiter from configuration.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
		burst:   cfg.RateLimit.Burst,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()

	// Opportunistic eviction keeps the map from growing unbounded.
	if len(rl.clients) > 10000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for key, c := range rl.clients {
			if c.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
	}

	return client.limiter
}

// Middleware returns the echo middleware enforcing the limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.limiterFor(c.RealIP()).Allow() {
				requestID, _ := c.Get("request_id").(string)
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limit_exceeded",
					Message:   "Too many requests, retry later",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

// RateLimitConfig wires the limiter only when enabled in config.
func RateLimitConfig(cfg *config.Config) echo.MiddlewareFunc {
	if !cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return NewRateLimiter(cfg).Middleware()
}
