package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

const maxImageSize = 5 * 1024 * 1024

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	maxImageSize   int64
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		maxImageSize:   maxImageSize,
	}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" validate:"required,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=100"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), c.Param("id"), entity.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted successfully",
	})
}

// UploadImage expects a multipart form with the image in the "file" field.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxImageSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxImageSize/(1024*1024)), nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	fileType := file.Header.Get("Content-Type")
	logger.Debug("image upload for product %s: %s (%d bytes, %s)", c.Param("id"), file.Filename, file.Size, fileType)

	product, err := h.productUseCase.UploadProductImage(c.Request().Context(), c.Param("id"), src, fileType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}
