package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// GetByIDs fetches the given products in one logical query. Missing IDs
	// are simply absent from the returned map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)

	List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// HealthChecker is implemented by stores that can report reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
