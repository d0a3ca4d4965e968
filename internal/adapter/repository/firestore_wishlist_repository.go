package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func (r *firestoreWishlistRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	doc, err := r.client.Collection(wishlistsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Wishlist", err)
		}
		return nil, errors.StoreUnavailable("Failed to get wishlist", err)
	}

	var wishlist entity.Wishlist
	if err := doc.DataTo(&wishlist); err != nil {
		return nil, errors.Internal("Failed to parse wishlist data", err)
	}
	if wishlist.Items == nil {
		wishlist.Items = []entity.WishlistItem{}
	}
	wishlist.UserID = userID

	return &wishlist, nil
}

func (r *firestoreWishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	ref := r.client.Collection(wishlistsCollection).Doc(wishlist.UserID)

	version, err := saveVersioned(ctx, r.client, ref, wishlist.Version, func(version int64) interface{} {
		next := wishlist.Clone()
		next.Version = version
		return next
	})
	if err != nil {
		return err
	}

	wishlist.Version = version
	return nil
}
