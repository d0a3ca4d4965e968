package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(fallback Policy, policies map[string]Policy) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(fallback, policies)
	rl.now = clock.now
	return rl, clock
}

func TestBurstThenRefill(t *testing.T) {
	rl, clock := newTestLimiter(Policy{Burst: 2, RefillRate: 1, RefillTime: time.Second}, nil)

	ok, _ := rl.Allow("1.2.3.4", "api")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4", "api")
	assert.True(t, ok)

	ok, wait := rl.Allow("1.2.3.4", "api")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	clock.advance(1500 * time.Millisecond)
	ok, _ = rl.Allow("1.2.3.4", "api")
	assert.True(t, ok)

	ok, wait = rl.Allow("1.2.3.4", "api")
	assert.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, wait)
}

func TestBucketsAreIsolatedByClientAndAction(t *testing.T) {
	rl, _ := newTestLimiter(Policy{Burst: 1, RefillRate: 1, RefillTime: time.Minute}, map[string]Policy{
		"cart_write": {Burst: 2, RefillRate: 1, RefillTime: time.Minute},
	})

	ok, _ := rl.Allow("a", "api")
	assert.True(t, ok)
	ok, _ = rl.Allow("a", "api")
	assert.False(t, ok)

	ok, _ = rl.Allow("b", "api")
	assert.True(t, ok)

	ok, _ = rl.Allow("a", "cart_write")
	assert.True(t, ok)
	tokens, capacity := rl.Status("a", "cart_write")
	assert.Equal(t, 1, tokens)
	assert.Equal(t, 2, capacity)
}

func TestPerMinute(t *testing.T) {
	p := PerMinute(120)
	assert.Equal(t, 120, p.Burst)
	assert.Equal(t, 500*time.Millisecond, p.RefillTime)

	assert.Equal(t, 1, PerMinute(0).Burst)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl, clock := newTestLimiter(PerMinute(10), nil)

	rl.Allow("a", "api")
	clock.advance(2 * time.Hour)
	rl.Allow("b", "api")
	rl.Cleanup(time.Hour)

	tokens, capacity := rl.Status("a", "api")
	assert.Zero(t, tokens)
	assert.Zero(t, capacity)
	_, capacity = rl.Status("b", "api")
	assert.Equal(t, 10, capacity)
}
