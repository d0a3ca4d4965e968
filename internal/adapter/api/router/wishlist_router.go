package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/infrastructure/ratelimit"
)

func SetupWishlistRouter(api *echo.Group, limiter *ratelimit.RateLimiter) {
	wishlistHandler := handler.GetWishlistHandler()
	writeLimit := middleware.RateLimit(limiter, middleware.ActionCartWrite)

	api.GET("/wishlist", wishlistHandler.GetWishlist)                       // ?userId=
	api.POST("/wishlist", wishlistHandler.AddToWishlist, writeLimit)        // {userId, item:{productId}}
	api.DELETE("/wishlist", wishlistHandler.RemoveFromWishlist, writeLimit) // {userId, productId}
}
