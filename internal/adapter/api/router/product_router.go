package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
)

func SetupProductRouter(api *echo.Group) {
	productHandler := handler.GetProductHandler()

	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:id", productHandler.GetProduct)
}
