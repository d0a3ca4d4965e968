package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository stores one Cart document per user.
type CartRepository interface {
	// GetByUserID returns a NOT_FOUND AppError when the user has no cart.
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)

	// Save replaces the whole document if the stored version still equals
	// cart.Version (zero: the document must not exist yet). On success
	// cart.Version is advanced; on a mismatch a CONFLICT AppError is returned
	// and nothing is written.
	Save(ctx context.Context, cart *entity.Cart) error
}
