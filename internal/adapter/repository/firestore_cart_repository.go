package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

// Carts live at carts/{userId}, one document per user with embedded items.
type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{client: client}
}

func (r *firestoreCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	doc, err := r.client.Collection(cartsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Cart", err)
		}
		return nil, errors.StoreUnavailable("Failed to get cart", err)
	}

	var cart entity.Cart
	if err := doc.DataTo(&cart); err != nil {
		return nil, errors.Internal("Failed to parse cart data", err)
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	cart.UserID = userID

	return &cart, nil
}

func (r *firestoreCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	ref := r.client.Collection(cartsCollection).Doc(cart.UserID)

	version, err := saveVersioned(ctx, r.client, ref, cart.Version, func(version int64) interface{} {
		next := cart.Clone()
		next.Version = version
		return next
	})
	if err != nil {
		return err
	}

	cart.Version = version
	return nil
}

func (r *firestoreCartRepository) Ping(ctx context.Context) error {
	return pingFirestore(ctx, r.client)
}
