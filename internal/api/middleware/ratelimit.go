package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/menumesa/pos-system/internal/api/metrics"
)

// RateLimiter counts a hit for key and reports whether the request is still
// within the window. Satisfied by the Redis fixed-window limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles a route per client IP. A limiter failure is logged and
// the request is let through: losing Redis must not take down login.
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + c.Path()

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.AuthRateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many authentication attempts, please try again later")
			}
			return next(c)
		}
	}
}
