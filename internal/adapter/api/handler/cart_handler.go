package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type getCartRequest struct {
	UserID string `query:"userId" validate:"required"`
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

type upsertCartItemRequest struct {
	UserID string           `json:"userId" validate:"required"`
	Item   *cartItemRequest `json:"item" validate:"required"`
}

type removeCartItemRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

type clearCartRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	var req getCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.GetCart(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

// UpsertItem adds item.quantity to the line, which may be negative.
func (h *CartHandler) UpsertItem(c echo.Context) error {
	var req upsertCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.cartUseCase.UpsertItem(c.Request().Context(), req.UserID, req.Item.ProductID, *req.Item.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	var req removeCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.RemoveItem(c.Request().Context(), req.UserID, req.ProductID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	var req clearCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.ClearCart(c.Request().Context(), req.UserID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}
