package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	maxAttempts int
	now         func() time.Time
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	maxAttempts int,
) *CartUseCase {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// GetCart returns the user's cart joined against the catalog. A user without
// a cart gets an empty one.
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (_ *entity.EnrichedCart, err error) {
	userID, err = requireID("userId", userID)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "cart.Get", attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, storeError("Failed to load cart", err)
		}
		cart = entity.NewCart(userID)
	}
	if len(cart.Items) == 0 {
		return &entity.EnrichedCart{UserID: userID, Items: []entity.EnrichedCartItem{}}, nil
	}

	products, err := lookupProducts(ctx, uc.productRepo, cart.ProductIDs())
	if err != nil {
		return nil, err
	}

	return enrichCart(cart, products), nil
}

// UpsertItem merges delta into the line for productID, creating the cart on
// first use. Lines falling to zero or below are removed.
func (uc *CartUseCase) UpsertItem(ctx context.Context, userID, productID string, delta int) (err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return err
	}
	if productID, err = requireID("productId", productID); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "cart.Upsert",
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
		attribute.Int("cart.delta", delta),
	)
	defer func() { endSpan(span, err) }()

	err = withOptimisticRetry(ctx, uc.maxAttempts, func() error {
		cart, err := uc.loadOrNew(ctx, userID)
		if err != nil {
			return err
		}
		if err := cart.ApplyDelta(productID, delta); err != nil {
			return errors.InvalidPayload("quantity is too large", err)
		}
		// Saved even when the items did not change, so the record exists.
		return uc.save(ctx, cart)
	})
	if err != nil {
		return err
	}

	logger.Debug("cart upsert: user=%s product=%s delta=%d", userID, productID, delta)
	return nil
}

// RemoveItem drops the line for productID. It fails with NOT_FOUND only when
// the user has no cart at all; a missing line is a no-op.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) (err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return err
	}
	if productID, err = requireID("productId", productID); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "cart.RemoveItem",
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	)
	defer func() { endSpan(span, err) }()

	return withOptimisticRetry(ctx, uc.maxAttempts, func() error {
		cart, err := uc.cartRepo.GetByUserID(ctx, userID)
		if err != nil {
			return storeError("Failed to load cart", err)
		}
		if !cart.RemoveItem(productID) {
			return nil
		}
		return uc.save(ctx, cart)
	})
}

// ClearCart empties the cart but keeps the record. No cart is a no-op.
func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) (err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "cart.Clear", attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	return withOptimisticRetry(ctx, uc.maxAttempts, func() error {
		cart, err := uc.cartRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return nil
			}
			return storeError("Failed to load cart", err)
		}
		if !cart.Clear() {
			return nil
		}
		return uc.save(ctx, cart)
	})
}

func (uc *CartUseCase) loadOrNew(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, errors.CodeNotFound) {
		return entity.NewCart(userID), nil
	}
	return nil, storeError("Failed to load cart", err)
}

func (uc *CartUseCase) save(ctx context.Context, cart *entity.Cart) error {
	cart.Touch(uc.now())
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return storeError("Failed to save cart", err)
	}
	return nil
}
