package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

// WishlistUseCase has set semantics and, unlike the cart, no clear operation.
type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	maxAttempts  int
	now          func() time.Time
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	maxAttempts int,
) *WishlistUseCase {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		maxAttempts:  maxAttempts,
		now:          time.Now,
	}
}

func (u *WishlistUseCase) GetWishlist(ctx context.Context, userID string) (_ *entity.EnrichedWishlist, err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "wishlist.Get", attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	wishlist, err := u.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, storeError("Failed to load wishlist", err)
		}
		wishlist = entity.NewWishlist(userID)
	}
	if len(wishlist.Items) == 0 {
		return &entity.EnrichedWishlist{UserID: userID, Items: []entity.EnrichedWishlistItem{}}, nil
	}

	products, err := lookupProducts(ctx, u.productRepo, wishlist.ProductIDs())
	if err != nil {
		return nil, err
	}

	return enrichWishlist(wishlist, products), nil
}

// AddToWishlist is idempotent; an already saved product is left untouched.
func (u *WishlistUseCase) AddToWishlist(ctx context.Context, userID, productID string) (err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return err
	}
	if productID, err = requireID("productId", productID); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "wishlist.Add",
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	)
	defer func() { endSpan(span, err) }()

	return withOptimisticRetry(ctx, u.maxAttempts, func() error {
		wishlist, err := u.wishlistRepo.GetByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, errors.CodeNotFound) {
				return storeError("Failed to load wishlist", err)
			}
			wishlist = entity.NewWishlist(userID)
		}

		now := u.now()
		if !wishlist.Add(productID, now) {
			return nil
		}
		return u.save(ctx, wishlist, now)
	})
}

// RemoveFromWishlist is idempotent and never creates a wishlist.
func (u *WishlistUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) (err error) {
	if userID, err = requireID("userId", userID); err != nil {
		return err
	}
	if productID, err = requireID("productId", productID); err != nil {
		return err
	}

	ctx, span := startSpan(ctx, "wishlist.Remove",
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	)
	defer func() { endSpan(span, err) }()

	return withOptimisticRetry(ctx, u.maxAttempts, func() error {
		wishlist, err := u.wishlistRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return nil
			}
			return storeError("Failed to load wishlist", err)
		}
		if !wishlist.Remove(productID) {
			return nil
		}
		return u.save(ctx, wishlist, u.now())
	})
}

func (u *WishlistUseCase) save(ctx context.Context, wishlist *entity.Wishlist, now time.Time) error {
	wishlist.Touch(now)
	if err := u.wishlistRepo.Save(ctx, wishlist); err != nil {
		return storeError("Failed to save wishlist", err)
	}
	return nil
}
