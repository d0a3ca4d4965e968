package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	w := NewWishlist("u1")
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, w.Add("p1", first))
	assert.False(t, w.Add("p1", first.Add(time.Minute)))

	assert.Len(t, w.Items, 1)
	assert.Equal(t, first, w.Items[0].AddedAt)
}

func TestWishlistRemove(t *testing.T) {
	w := NewWishlist("u1")
	w.Add("p1", time.Now())
	w.Add("p2", time.Now())

	assert.True(t, w.Remove("p1"))
	assert.False(t, w.Remove("p1"))
	assert.False(t, w.Contains("p1"))
	assert.True(t, w.Contains("p2"))
}

func TestProductApplyPartialUpdate(t *testing.T) {
	p := &Product{Name: "Lamp", Price: 10, Stock: 3}
	price := 12.5
	stock := 0

	p.Apply(ProductUpdate{Price: &price, Stock: &stock})

	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 0, p.Stock)
}
