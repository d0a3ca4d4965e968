package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type getWishlistRequest struct {
	UserID string `query:"userId" validate:"required"`
}

type wishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type addToWishlistRequest struct {
	UserID string               `json:"userId" validate:"required"`
	Item   *wishlistItemRequest `json:"item" validate:"required"`
}

type removeFromWishlistRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	var req getWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	wishlist, err := h.wishlistUseCase.GetWishlist(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.wishlistUseCase.AddToWishlist(c.Request().Context(), req.UserID, req.Item.ProductID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	var req removeFromWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.wishlistUseCase.RemoveFromWishlist(c.Request().Context(), req.UserID, req.ProductID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}
