package ratelimit

import (
	"sync"
	"time"
)

// Policy sizes the bucket for one action: Burst tokens up front, then
// RefillRate tokens every RefillTime.
type Policy struct {
	Burst      int
	RefillRate int
	RefillTime time.Duration
}

// PerMinute spreads n requests evenly across a minute.
func PerMinute(n int) Policy {
	if n < 1 {
		n = 1
	}
	return Policy{Burst: n, RefillRate: 1, RefillTime: time.Minute / time.Duration(n)}
}

// TokenBucket represents a token bucket for rate limiting
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	lastSeen   time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(p Policy, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     p.Burst,
		maxTokens:  p.Burst,
		refillRate: p.RefillRate,
		refillTime: p.RefillTime,
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow consumes a token if one is available. Otherwise it reports how long
// until the next refill.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastSeen = now

	intervals := int(now.Sub(tb.lastRefill) / tb.refillTime)
	if intervals > 0 {
		tb.tokens += intervals * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(intervals) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

func (tb *TokenBucket) Tokens() int {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.tokens
}

func (tb *TokenBucket) idleSince(now time.Time) time.Duration {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return now.Sub(tb.lastSeen)
}

// RateLimiter keeps one bucket per (client, action) pair.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	policies map[string]Policy
	fallback Policy
	mutex    sync.RWMutex
	now      func() time.Time
}

func NewRateLimiter(fallback Policy, policies map[string]Policy) *RateLimiter {
	if policies == nil {
		policies = make(map[string]Policy)
	}
	return &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		policies: policies,
		fallback: fallback,
		now:      time.Now,
	}
}

func (rl *RateLimiter) policyFor(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return rl.fallback
}

// Allow checks if a client action is allowed
func (rl *RateLimiter) Allow(clientID, action string) (bool, time.Duration) {
	key := clientID + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[key]; !exists {
			bucket = NewTokenBucket(rl.policyFor(action), now)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow(now)
}

// Status returns the remaining and maximum tokens for a client action.
func (rl *RateLimiter) Status(clientID, action string) (tokens int, maxTokens int) {
	rl.mutex.RLock()
	bucket, exists := rl.buckets[clientID+":"+action]
	rl.mutex.RUnlock()

	if !exists {
		return 0, 0
	}
	return bucket.Tokens(), bucket.maxTokens
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		if bucket.idleSince(now) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every 30 minutes until done is closed.
func (rl *RateLimiter) StartCleanupRoutine(done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
