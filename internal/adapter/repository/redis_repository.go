package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

// Redis layout:
//
//	cart:{userId}      JSON entity.Cart
//	wishlist:{userId}  JSON entity.Wishlist
//	products           hash of product id -> JSON entity.Product
const (
	redisCartPrefix     = "cart:"
	redisWishlistPrefix = "wishlist:"
	redisProductsKey    = "products"
)

// NewRedisClient accepts either a redis:// URL or a bare host:port and
// returns a traced client.
func NewRedisClient(redisAddr string) *redis.Client {
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			PoolTimeout:  4 * time.Second,
			IdleTimeout:  3 * time.Minute,
		}
	}

	client := redis.NewClient(opts)
	client.AddHook(redisotel.NewTracingHook())
	return client
}

// redisDocuments implements versioned whole-document replace with WATCH/MULTI.
type redisDocuments struct {
	client *redis.Client
}

func (d redisDocuments) load(ctx context.Context, key, resource string, out interface{}) error {
	raw, err := d.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return errors.NotFound(resource, nil)
	}
	if err != nil {
		return errors.StoreUnavailable("Failed to get "+resource, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Internal("Failed to parse "+resource, err)
	}
	return nil
}

func (d redisDocuments) save(ctx context.Context, key, resource string, expected int64, build func(version int64) interface{}) (int64, error) {
	var written int64

	err := d.client.Watch(ctx, func(tx *redis.Tx) error {
		var current int64

		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
		case err != nil:
			return err
		default:
			var head versionHead
			if err := json.Unmarshal(raw, &head); err != nil {
				return err
			}
			current = head.Version
		}

		if current != expected {
			return errVersionMismatch
		}

		payload, err := json.Marshal(build(current + 1))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err == nil {
			written = current + 1
		}
		return err
	}, key)

	switch {
	case err == nil:
		return written, nil
	case stderrors.Is(err, errVersionMismatch), stderrors.Is(err, redis.TxFailedErr):
		return 0, errors.Conflict(resource + " was modified concurrently")
	default:
		return 0, errors.StoreUnavailable("Failed to save "+resource, err)
	}
}

type redisCartRepository struct {
	docs redisDocuments
}

func NewRedisCartRepository(client *redis.Client) repository.CartRepository {
	return &redisCartRepository{docs: redisDocuments{client: client}}
}

func (r *redisCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	var cart entity.Cart
	if err := r.docs.load(ctx, redisCartPrefix+userID, "Cart", &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	return &cart, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	version, err := r.docs.save(ctx, redisCartPrefix+cart.UserID, "Cart", cart.Version, func(version int64) interface{} {
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

func (r *redisCartRepository) Ping(ctx context.Context) error {
	if err := r.docs.client.Ping(ctx).Err(); err != nil {
		return errors.StoreUnavailable("Redis is unreachable", err)
	}
	return nil
}

type redisWishlistRepository struct {
	docs redisDocuments
}

func NewRedisWishlistRepository(client *redis.Client) repository.WishlistRepository {
	return &redisWishlistRepository{docs: redisDocuments{client: client}}
}

func (r *redisWishlistRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	var wishlist entity.Wishlist
	if err := r.docs.load(ctx, redisWishlistPrefix+userID, "Wishlist", &wishlist); err != nil {
		return nil, err
	}
	if wishlist.Items == nil {
		wishlist.Items = []entity.WishlistItem{}
	}
	return &wishlist, nil
}

func (r *redisWishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	version, err := r.docs.save(ctx, redisWishlistPrefix+wishlist.UserID, "Wishlist", wishlist.Version, func(version int64) interface{} {
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

type redisProductRepository struct {
	client *redis.Client
}

func NewRedisProductRepository(client *redis.Client) repository.ProductRepository {
	return &redisProductRepository{client: client}
}

func (r *redisProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	return r.put(ctx, product, "Failed to create product")
}

func (r *redisProductRepository) put(ctx context.Context, product *entity.Product, message string) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return errors.Internal("Failed to encode product", err)
	}
	if err := r.client.HSet(ctx, redisProductsKey, product.ID, payload).Err(); err != nil {
		return errors.StoreUnavailable(message, err)
	}
	return nil
}

func (r *redisProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := r.client.HGet(ctx, redisProductsKey, id).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound("Product", nil)
	}
	if err != nil {
		return nil, errors.StoreUnavailable("Failed to get product", err)
	}

	var product entity.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	return &product, nil
}

func (r *redisProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	result := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	values, err := r.client.HMGet(ctx, redisProductsKey, ids...).Result()
	if err != nil {
		return nil, errors.StoreUnavailable("Failed to fetch products", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var product entity.Product
		if err := json.Unmarshal([]byte(raw), &product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		result[ids[i]] = &product
	}
	return result, nil
}

func (r *redisProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	values, err := r.client.HVals(ctx, redisProductsKey).Result()
	if err != nil {
		return nil, 0, errors.StoreUnavailable("Failed to list products", err)
	}

	all := make([]*entity.Product, 0, len(values))
	for _, raw := range values {
		var product entity.Product
		if err := json.Unmarshal([]byte(raw), &product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		all = append(all, &product)
	}
	sortNewestFirst(all)

	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *redisProductRepository) Update(ctx context.Context, product *entity.Product) error {
	exists, err := r.client.HExists(ctx, redisProductsKey, product.ID).Result()
	if err != nil {
		return errors.StoreUnavailable("Failed to update product", err)
	}
	if !exists {
		return errors.NotFound("Product", nil)
	}

	product.UpdatedAt = time.Now()
	return r.put(ctx, product, "Failed to update product")
}

func (r *redisProductRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.HDel(ctx, redisProductsKey, id).Result()
	if err != nil {
		return errors.StoreUnavailable("Failed to delete product", err)
	}
	if removed == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}
