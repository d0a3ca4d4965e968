package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/infrastructure/ratelimit"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
)

// Rate limit actions.
const (
	ActionAPI       = "api"
	ActionCartWrite = "cart_write"
)

// RateLimit draws one token per request from the caller's bucket for action.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				logger.WithFields(map[string]interface{}{
					"ip":     ip,
					"action": action,
					"path":   c.Path(),
				}).Warn("rate limit exceeded")

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}

			return next(c)
		}
	}
}

func retryAfterSeconds(wait time.Duration) int {
	seconds := int(math.Ceil(wait.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
