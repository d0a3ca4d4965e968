package entity

import (
	"errors"
	"math"
	"time"
)

type CartItem struct {
	ProductID string `json:"productId" firestore:"productId"`
	Quantity  int    `json:"quantity" firestore:"quantity"`
}

// Cart is the per-user line item record. Items never hold a quantity <= 0
// and never repeat a ProductID.
//
// Version is the optimistic concurrency token: zero means the record has not
// been persisted yet, and every successful save increments it.
type Cart struct {
	UserID    string     `json:"userId" firestore:"userId"`
	Items     []CartItem `json:"items" firestore:"items"`
	Version   int64      `json:"version" firestore:"version"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID: userID,
		Items:  []CartItem{},
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// ErrQuantityOverflow is returned when a delta would push a line past math.MaxInt.
var ErrQuantityOverflow = errors.New("cart quantity overflows int")

// ApplyDelta merges a signed quantity change into the cart. An existing line
// whose quantity drops to zero or below is removed; a missing line is only
// created for a positive delta. The cart is left untouched on overflow.
func (c *Cart) ApplyDelta(productID string, delta int) error {
	i := c.indexOf(productID)
	if i < 0 {
		if delta > 0 {
			c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: delta})
		}
		return nil
	}

	current := c.Items[i].Quantity
	if delta > 0 && current > math.MaxInt-delta {
		return ErrQuantityOverflow
	}

	next := current + delta
	if next <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}
	c.Items[i].Quantity = next
	return nil
}

func (c *Cart) RemoveItem(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clear() bool {
	if len(c.Items) == 0 {
		return false
	}
	c.Items = []CartItem{}
	return true
}

func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// ProductIDs returns the distinct referenced product IDs in item order.
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return distinct(ids)
}

// Touch stamps CreatedAt on first persistence and UpdatedAt on every save.
func (c *Cart) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

type EnrichedCartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// EnrichedCart is the read view: each line joined against the live catalog.
// Product is nil for lines whose product has been deleted.
type EnrichedCart struct {
	UserID string             `json:"userId"`
	Items  []EnrichedCartItem `json:"items"`
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
