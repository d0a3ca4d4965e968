package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "storefront/internal/adapter/repository"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

func newWishlistFixture(t *testing.T) (*WishlistUseCase, repository.WishlistRepository, repository.ProductRepository) {
	t.Helper()
	wishlists := adapter.NewMemoryWishlistRepository()
	products := adapter.NewMemoryProductRepository()
	return NewWishlistUseCase(wishlists, products, 5), wishlists, products
}

func TestAddToWishlistIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc, wishlists, products := newWishlistFixture(t)

	mug := &entity.Product{Name: "Mug", Description: "Blue", Price: 8, Image: "https://img/mug.png"}
	require.NoError(t, products.Create(ctx, mug))

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return clock }
	require.NoError(t, uc.AddToWishlist(ctx, "u1", mug.ID))

	uc.now = func() time.Time { return clock.Add(time.Hour) }
	require.NoError(t, uc.AddToWishlist(ctx, "u1", mug.ID))

	stored, err := wishlists.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version, "second add must not write")

	wishlist, err := uc.GetWishlist(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.True(t, wishlist.Items[0].AddedAt.Equal(clock))
	require.NotNil(t, wishlist.Items[0].Product)
	assert.Equal(t, "Mug", wishlist.Items[0].Product.Name)
}

func TestRemoveFromWishlist(t *testing.T) {
	ctx := context.Background()
	uc, wishlists, _ := newWishlistFixture(t)

	require.NoError(t, uc.RemoveFromWishlist(ctx, "u1", "p1"))
	_, err := wishlists.GetByUserID(ctx, "u1")
	assert.True(t, errors.Is(err, errors.CodeNotFound), "remove must not create a wishlist")

	require.NoError(t, uc.AddToWishlist(ctx, "u1", "p1"))
	require.NoError(t, uc.AddToWishlist(ctx, "u1", "p2"))
	require.NoError(t, uc.RemoveFromWishlist(ctx, "u1", "p1"))
	require.NoError(t, uc.RemoveFromWishlist(ctx, "u1", "p1"))

	stored, err := wishlists.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, stored.ProductIDs())
}

func TestGetWishlistKeepsDanglingReferences(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newWishlistFixture(t)

	require.NoError(t, uc.AddToWishlist(ctx, "u1", "retired"))

	wishlist, err := uc.GetWishlist(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Nil(t, wishlist.Items[0].Product)
}

func TestGetWishlistWithoutRecord(t *testing.T) {
	uc, _, _ := newWishlistFixture(t)

	wishlist, err := uc.GetWishlist(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", wishlist.UserID)
	assert.NotNil(t, wishlist.Items)
	assert.Empty(t, wishlist.Items)
}

func TestWishlistValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newWishlistFixture(t)

	_, err := uc.GetWishlist(ctx, "")
	assert.True(t, errors.Is(err, errors.CodeInvalidPayload))
	assert.True(t, errors.Is(uc.AddToWishlist(ctx, "u1", " "), errors.CodeInvalidPayload))
	assert.True(t, errors.Is(uc.RemoveFromWishlist(ctx, "u/1", "p1"), errors.CodeInvalidPayload))
}
