package handler

import (
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

var (
	cartHandler     *CartHandler
	wishlistHandler *WishlistHandler
	productHandler  *ProductHandler
	healthHandler   *HealthHandler
)

func Setup(
	cartUseCase *usecase.CartUseCase,
	wishlistUseCase *usecase.WishlistUseCase,
	productUseCase *usecase.ProductUseCase,
	store repository.HealthChecker,
) {
	cartHandler = NewCartHandler(cartUseCase)
	wishlistHandler = NewWishlistHandler(wishlistUseCase)
	productHandler = NewProductHandler(productUseCase)
	healthHandler = NewHealthHandler(store)
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetWishlistHandler() *WishlistHandler {
	return wishlistHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
