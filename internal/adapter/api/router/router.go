package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/pkg/logger"
)

// Setup registers every route. authMiddleware may be nil when Firebase is not
// configured; the admin routes are then left out.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	SetupHealthRouter(e)

	api := e.Group("/api", middleware.RateLimit(limiter, middleware.ActionAPI))
	SetupCartRouter(api, limiter)
	SetupWishlistRouter(api, limiter)
	SetupProductRouter(api)

	if authMiddleware == nil {
		logger.Warn("Firebase auth is not configured; admin routes are disabled")
		return
	}
	SetupAdminRouter(api, authMiddleware)
}
