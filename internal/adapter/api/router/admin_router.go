package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

// SetupAdminRouter mounts catalog management behind Firebase auth and the
// admin claim.
func SetupAdminRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	admin := api.Group("/admin/products")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(middleware.AdminOnly)

	admin.GET("", productHandler.ListProducts)
	admin.POST("", productHandler.CreateProduct)
	admin.PUT("/:id", productHandler.UpdateProduct)
	admin.DELETE("/:id", productHandler.DeleteProduct)
	admin.POST("/:id/image", productHandler.UploadImage)
}
