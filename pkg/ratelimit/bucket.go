// Package ratelimit implements an in-process token bucket used to throttle
// socket events and, when Redis is not configured, HTTP requests.
package ratelimit

import (
	"sync"
	"time"
)

// Bucket holds up to capacity tokens and refills capacity tokens per
// interval.
type Bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	last     time.Time
	now      func() time.Time
}

func NewBucket(capacity int, interval time.Duration) *Bucket {
	return newBucket(capacity, interval, time.Now)
}

func newBucket(capacity int, interval time.Duration, now func() time.Time) *Bucket {
	if capacity <= 0 {
		capacity = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Bucket{
		tokens:   float64(capacity),
		capacity: float64(capacity),
		rate:     float64(capacity) / interval.Seconds(),
		last:     now(),
		now:      now,
	}
}

// Allow takes one token if available.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *Bucket) refill() {
	now := b.now()
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * b.rate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
	}
	b.last = now
}

// full reports whether the bucket has refilled completely, i.e. the key has
// been idle long enough to be forgotten.
func (b *Bucket) full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.tokens >= b.capacity
}

// pruneThreshold is the number of keys above which idle buckets are dropped.
const pruneThreshold = 4096

// Buckets is a set of buckets sharing one configuration, one per key.
type Buckets struct {
	mu       sync.Mutex
	capacity int
	interval time.Duration
	buckets  map[string]*Bucket
	now      func() time.Time
}

func NewBuckets(capacity int, interval time.Duration) *Buckets {
	return &Buckets{
		capacity: capacity,
		interval: interval,
		buckets:  make(map[string]*Bucket),
		now:      time.Now,
	}
}

func (k *Buckets) Allow(key string) bool {
	k.mu.Lock()
	b, ok := k.buckets[key]
	if !ok {
		if len(k.buckets) >= pruneThreshold {
			k.prune()
		}
		b = newBucket(k.capacity, k.interval, k.now)
		k.buckets[key] = b
	}
	k.mu.Unlock()

	return b.Allow()
}

// Len returns the number of tracked keys.
func (k *Buckets) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

// prune must be called with k.mu held.
func (k *Buckets) prune() {
	for key, b := range k.buckets {
		if b.full() {
			delete(k.buckets, key)
		}
	}
}
