package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// WishlistRepository mirrors CartRepository for wishlists.
type WishlistRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error)
	Save(ctx context.Context, wishlist *entity.Wishlist) error
}
