package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

// lookupProducts batch-fetches the distinct product ids in one catalog call.
// Ids that no longer resolve are absent from the map; callers keep the line
// and expose a nil product.
func lookupProducts(ctx context.Context, products repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	if len(ids) == 0 {
		return map[string]*entity.Product{}, nil
	}

	found, err := products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("Failed to look up products", err)
	}
	return found, nil
}

func enrichCart(cart *entity.Cart, products map[string]*entity.Product) *entity.EnrichedCart {
	items := make([]entity.EnrichedCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, entity.EnrichedCartItem{
			Product:  products[item.ProductID],
			Quantity: item.Quantity,
		})
	}
	return &entity.EnrichedCart{UserID: cart.UserID, Items: items}
}

func enrichWishlist(wishlist *entity.Wishlist, products map[string]*entity.Product) *entity.EnrichedWishlist {
	items := make([]entity.EnrichedWishlistItem, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		items = append(items, entity.EnrichedWishlistItem{
			Product: products[item.ProductID],
			AddedAt: item.AddedAt,
		})
	}
	return &entity.EnrichedWishlist{UserID: wishlist.UserID, Items: items}
}
