package entity

import (
	"time"
)

type WishlistItem struct {
	ProductID string    `json:"productId" firestore:"productId"`
	AddedAt   time.Time `json:"addedAt" firestore:"addedAt"`
}

// Wishlist is the per-user set of saved products. No ProductID repeats.
// Version follows the same optimistic scheme as Cart.
type Wishlist struct {
	UserID    string         `json:"userId" firestore:"userId"`
	Items     []WishlistItem `json:"items" firestore:"items"`
	Version   int64          `json:"version" firestore:"version"`
	CreatedAt time.Time      `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" firestore:"updatedAt"`
}

func NewWishlist(userID string) *Wishlist {
	return &Wishlist{
		UserID: userID,
		Items:  []WishlistItem{},
	}
}

func (w *Wishlist) Contains(productID string) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Add is idempotent; it reports whether the product was newly added.
func (w *Wishlist) Add(productID string, addedAt time.Time) bool {
	if w.Contains(productID) {
		return false
	}
	w.Items = append(w.Items, WishlistItem{ProductID: productID, AddedAt: addedAt})
	return true
}

func (w *Wishlist) Remove(productID string) bool {
	for i, item := range w.Items {
		if item.ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wishlist) ProductIDs() []string {
	ids := make([]string, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.ProductID)
	}
	return distinct(ids)
}

func (w *Wishlist) Touch(now time.Time) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
}

func (w *Wishlist) Clone() *Wishlist {
	out := *w
	out.Items = make([]WishlistItem, len(w.Items))
	copy(out.Items, w.Items)
	return &out
}

type EnrichedWishlistItem struct {
	Product *Product  `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}

type EnrichedWishlist struct {
	UserID string                 `json:"userId"`
	Items  []EnrichedWishlistItem `json:"items"`
}
