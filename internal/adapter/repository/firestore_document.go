package repository

import (
	"context"
	stderrors "errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront/pkg/errors"
)

const (
	cartsCollection     = "carts"
	wishlistsCollection = "wishlists"
	productsCollection  = "products"
)

var errVersionMismatch = stderrors.New("version mismatch")

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

type versionHead struct {
	Version int64 `firestore:"version" json:"version"`
}

// saveVersioned writes the document produced by build(nextVersion) inside a
// transaction, provided the stored version still equals expected. A missing
// document has version zero.
func saveVersioned(ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, expected int64, build func(version int64) interface{}) (int64, error) {
	var written int64

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current int64

		snap, err := tx.Get(ref)
		switch {
		case err != nil && !IsNotFound(err):
			return err
		case err == nil && snap.Exists():
			var head versionHead
			if err := snap.DataTo(&head); err != nil {
				return err
			}
			current = head.Version
		}

		if current != expected {
			return errVersionMismatch
		}

		written = current + 1
		return tx.Set(ref, build(written))
	})
	if err != nil {
		if stderrors.Is(err, errVersionMismatch) {
			return 0, errors.Conflict("Document was modified concurrently")
		}
		return 0, errors.StoreUnavailable("Failed to save document", err)
	}

	return written, nil
}

// pingFirestore issues the cheapest possible read against the products collection.
func pingFirestore(ctx context.Context, client *firestore.Client) error {
	iter := client.Collection(productsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err != nil && err != iterator.Done {
		return errors.StoreUnavailable("Firestore is unreachable", err)
	}
	return nil
}
