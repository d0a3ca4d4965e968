package entity

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDeltaSumsAndRemoves(t *testing.T) {
	c := NewCart("u1")

	assert.NoError(t, c.ApplyDelta("p1", 3))
	assert.NoError(t, c.ApplyDelta("p1", -1))
	assert.Equal(t, 2, c.Quantity("p1"))

	assert.NoError(t, c.ApplyDelta("p1", -2))
	assert.Empty(t, c.Items)
}

func TestApplyDeltaNeverLeavesNonPositiveQuantity(t *testing.T) {
	c := NewCart("u1")
	c.ApplyDelta("p1", 2)
	c.ApplyDelta("p2", 1)

	c.ApplyDelta("p1", -10)

	assert.Equal(t, []CartItem{{ProductID: "p2", Quantity: 1}}, c.Items)
	for _, item := range c.Items {
		assert.Positive(t, item.Quantity)
	}
}

func TestApplyDeltaIgnoresNonPositiveOnMissingLine(t *testing.T) {
	c := NewCart("u1")

	assert.NoError(t, c.ApplyDelta("p1", -5))
	assert.NoError(t, c.ApplyDelta("p1", 0))
	assert.Empty(t, c.Items)
}

func TestApplyDeltaZeroOnExistingLine(t *testing.T) {
	c := NewCart("u1")
	c.ApplyDelta("p1", 4)

	assert.NoError(t, c.ApplyDelta("p1", 0))
	assert.Equal(t, 4, c.Quantity("p1"))
}

func TestApplyDeltaRejectsOverflow(t *testing.T) {
	c := NewCart("u1")
	c.ApplyDelta("p1", 2)

	err := c.ApplyDelta("p1", math.MaxInt)
	assert.ErrorIs(t, err, ErrQuantityOverflow)
	assert.Equal(t, 2, c.Quantity("p1"))

	assert.NoError(t, c.ApplyDelta("p1", math.MaxInt-2))
	assert.Equal(t, math.MaxInt, c.Quantity("p1"))
	assert.NoError(t, c.ApplyDelta("p1", math.MinInt))
	assert.Empty(t, c.Items)
}

func TestRemoveItemAndClearAreIdempotent(t *testing.T) {
	c := NewCart("u1")
	c.ApplyDelta("p1", 1)
	c.ApplyDelta("p2", 1)

	assert.True(t, c.RemoveItem("p1"))
	assert.False(t, c.RemoveItem("p1"))
	assert.Equal(t, 0, c.Quantity("p1"))

	assert.True(t, c.Clear())
	assert.False(t, c.Clear())
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}

func TestProductIDsAreDistinctAndOrdered(t *testing.T) {
	c := &Cart{Items: []CartItem{{"b", 1}, {"a", 1}, {"b", 2}}}
	assert.Equal(t, []string{"b", "a"}, c.ProductIDs())
	assert.Len(t, c.Items, 3)
}

func TestCloneDoesNotAlias(t *testing.T) {
	c := NewCart("u1")
	c.ApplyDelta("p1", 1)

	clone := c.Clone()
	clone.ApplyDelta("p1", 5)

	assert.Equal(t, 1, c.Quantity("p1"))
	assert.Equal(t, 6, clone.Quantity("p1"))
}

func TestTouchKeepsCreatedAt(t *testing.T) {
	c := NewCart("u1")
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	c.Touch(first)
	c.Touch(second)

	assert.Equal(t, first, c.CreatedAt)
	assert.Equal(t, second, c.UpdatedAt)
}
