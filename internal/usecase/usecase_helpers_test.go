package usecase

import (
	"context"
	stderrors "errors"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

var errStoreDown = stderrors.New("connection refused")

// brokenCartRepository fails every call as an unreachable store would.
type brokenCartRepository struct{}

func (brokenCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	return nil, errors.StoreUnavailable("Failed to get cart", errStoreDown)
}

func (brokenCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	return errors.StoreUnavailable("Failed to save cart", errStoreDown)
}

// conflictingCartRepository reports a version conflict for the first
// `conflicts` saves, simulating a concurrent writer.
type conflictingCartRepository struct {
	repository.CartRepository

	mu        sync.Mutex
	conflicts int
	saves     int
}

func (r *conflictingCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	r.saves++
	conflict := r.saves <= r.conflicts
	r.mu.Unlock()

	if conflict {
		return errors.Conflict("Cart was modified concurrently")
	}
	return r.CartRepository.Save(ctx, cart)
}

// countingCartRepository counts Save calls.
type countingCartRepository struct {
	repository.CartRepository

	mu    sync.Mutex
	saves int
}

func (r *countingCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.CartRepository.Save(ctx, cart)
}

// brokenCatalog fails product lookups.
type brokenCatalog struct {
	repository.ProductRepository
}

func (brokenCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return nil, errStoreDown
}

// countingCatalog records the id sets passed to GetByIDs.
type countingCatalog struct {
	repository.ProductRepository
	calls [][]string
}

func (c *countingCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	c.calls = append(c.calls, append([]string(nil), ids...))
	return c.ProductRepository.GetByIDs(ctx, ids)
}
