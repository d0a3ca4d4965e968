package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/infrastructure/ratelimit"
)

func SetupCartRouter(api *echo.Group, limiter *ratelimit.RateLimiter) {
	cartHandler := handler.GetCartHandler()
	writeLimit := middleware.RateLimit(limiter, middleware.ActionCartWrite)

	api.GET("/cart", cartHandler.GetCart)                  // ?userId=
	api.POST("/cart", cartHandler.UpsertItem, writeLimit)  // {userId, item:{productId, quantity}}
	api.PATCH("/cart", cartHandler.RemoveItem, writeLimit) // {userId, productId}
	api.DELETE("/cart", cartHandler.ClearCart, writeLimit) // {userId}
}
