package repository

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

// Firestore caps GetAll batches well above this; 30 keeps each RPC small and
// matches the limit used for "in" queries.
const productBatchSize = 30

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection(productsCollection).NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.StoreUnavailable("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.StoreUnavailable("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product.ID = doc.Ref.ID

	return &product, nil
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	result := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < len(ids); i += productBatchSize {
		end := i + productBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[i:end]

		g.Go(func() error {
			refs := make([]*firestore.DocumentRef, len(batch))
			for j, id := range batch {
				refs[j] = r.client.Collection(productsCollection).Doc(id)
			}

			docs, err := r.client.GetAll(gctx, refs)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, doc := range docs {
				if doc == nil || !doc.Exists() {
					continue
				}
				var product entity.Product
				if err := doc.DataTo(&product); err != nil {
					return err
				}
				product.ID = doc.Ref.ID
				result[doc.Ref.ID] = &product
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.StoreUnavailable("Failed to fetch products", err)
	}

	return result, nil
}

func (r *firestoreProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection(productsCollection).OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.StoreUnavailable("Failed to count products", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	products := []*entity.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.StoreUnavailable("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		product.ID = doc.Ref.ID
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	ref := r.client.Collection(productsCollection).Doc(product.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, product)
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.StoreUnavailable("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.StoreUnavailable("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Ping(ctx context.Context) error {
	return pingFirestore(ctx, r.client)
}
