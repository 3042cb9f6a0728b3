package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies a longer timeout to the render endpoints,
// which run the full pipeline, and the default timeout everywhere else.
func SelectiveTimeoutConfig(defaultTimeout, renderTimeout time.Duration) echo.MiddlewareFunc {
	standard := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	extended := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: renderTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Path(), "/api/v1/render") {
				return extended(next)(c)
			}
			return standard(next)(c)
		}
	}
}
