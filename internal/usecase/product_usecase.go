package usecase

import (
	"context"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

const productImageFolder = "products"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

type ProductUseCase struct {
	productRepo repository.ProductRepository
	files       service.FileUploadService
}

// NewProductUseCase wires the catalog. files may be nil, in which case image
// uploads are rejected.
func NewProductUseCase(productRepo repository.ProductRepository, files service.FileUploadService) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		files:       files,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Stock       int
	Category    string
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	products, total, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, storeError("Failed to list products", err)
	}
	return products, total, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("Failed to get product", err)
	}
	return product, nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (_ *entity.Product, err error) {
	ctx, span := startSpan(ctx, "product.Create")
	defer func() { endSpan(span, err) }()

	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Stock:       input.Stock,
		Category:    input.Category,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, storeError("Failed to create product", err)
	}

	logger.Info("Product %s created (%s)", product.ID, product.Name)
	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, update entity.ProductUpdate) (_ *entity.Product, err error) {
	ctx, span := startSpan(ctx, "product.Update", attribute.String("product.id", id))
	defer func() { endSpan(span, err) }()

	product, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Apply(update)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, storeError("Failed to update product", err)
	}
	return product, nil
}

// DeleteProduct removes the catalog entry only. Carts and wishlists keep
// their references, which then enrich to a nil product.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "product.Delete", attribute.String("product.id", id))
	defer func() { endSpan(span, err) }()

	if id, err = requireID("id", id); err != nil {
		return err
	}
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return storeError("Failed to delete product", err)
	}

	logger.Info("Product %s deleted", id)
	return nil
}

// UploadProductImage stores the file and points product.Image at it. The
// previous image is removed on a best-effort basis.
func (uc *ProductUseCase) UploadProductImage(ctx context.Context, id string, file io.Reader, contentType string) (_ *entity.Product, err error) {
	ctx, span := startSpan(ctx, "product.UploadImage", attribute.String("product.id", id))
	defer func() { endSpan(span, err) }()

	if uc.files == nil {
		return nil, errors.New("STORAGE_DISABLED", "Image storage is not configured", http.StatusServiceUnavailable, nil)
	}
	if !allowedImageTypes[contentType] {
		return nil, errors.InvalidPayload("file must be a JPEG, PNG or GIF image", nil)
	}

	product, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, productImageFolder)
	if err != nil {
		return nil, errors.StoreUnavailable("Failed to upload image", err)
	}

	previous := product.Image
	product.Image = url
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, storeError("Failed to update product", err)
	}

	if previous != "" && previous != url {
		if err := uc.files.DeleteFile(ctx, previous); err != nil {
			logger.Debug("Could not delete previous image %s: %v", previous, err)
		}
	}

	return product, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return errors.InvalidPayload("name is required", nil)
	case p.Description == "":
		return errors.InvalidPayload("description is required", nil)
	case p.Price <= 0:
		return errors.InvalidPayload("price must be greater than 0", nil)
	case p.Image == "":
		return errors.InvalidPayload("image is required", nil)
	case p.Stock < 0:
		return errors.InvalidPayload("stock must be at least 0", nil)
	}
	return nil
}
