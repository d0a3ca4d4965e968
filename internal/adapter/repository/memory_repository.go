package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

// In-memory stores back the "memory" backend and the use case tests. They
// honour the same version contract as the Firestore and Redis stores.

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*entity.Cart
}

func NewMemoryCartRepository() repository.CartRepository {
	return &memoryCartRepository{carts: make(map[string]*entity.Cart)}
}

func (r *memoryCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, errors.NotFound("Cart", nil)
	}
	return cart.Clone(), nil
}

func (r *memoryCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if stored, ok := r.carts[cart.UserID]; ok {
		current = stored.Version
	}
	if current != cart.Version {
		return errors.Conflict("Cart was modified concurrently")
	}

	next := cart.Clone()
	next.Version = current + 1
	r.carts[cart.UserID] = next
	cart.Version = next.Version
	return nil
}

func (r *memoryCartRepository) Ping(ctx context.Context) error {
	return nil
}

type memoryWishlistRepository struct {
	mu        sync.RWMutex
	wishlists map[string]*entity.Wishlist
}

func NewMemoryWishlistRepository() repository.WishlistRepository {
	return &memoryWishlistRepository{wishlists: make(map[string]*entity.Wishlist)}
}

func (r *memoryWishlistRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[userID]
	if !ok {
		return nil, errors.NotFound("Wishlist", nil)
	}
	return wishlist.Clone(), nil
}

func (r *memoryWishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if stored, ok := r.wishlists[wishlist.UserID]; ok {
		current = stored.Version
	}
	if current != wishlist.Version {
		return errors.Conflict("Wishlist was modified concurrently")
	}

	next := wishlist.Clone()
	next.Version = current + 1
	r.wishlists[wishlist.UserID] = next
	wishlist.Version = next.Version
	return nil
}

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{products: make(map[string]*entity.Product)}
}

func (r *memoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	out := *product
	return &out, nil
}

func (r *memoryProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out := *product
			result[id] = &out
		}
	}
	return result, nil
}

func (r *memoryProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		out := *product
		all = append(all, &out)
	}
	sortNewestFirst(all)

	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *memoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	product.UpdatedAt = time.Now()
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.products, id)
	return nil
}

func sortNewestFirst(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

func paginate(products []*entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(products) {
		return []*entity.Product{}
	}
	end := len(products)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return products[offset:end]
}
