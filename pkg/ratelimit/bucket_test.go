package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBucket(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newBucket(3, time.Second, clock.now)

	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
	assert.False(t, b.Allow(), "burst exhausted")

	clock.advance(400 * time.Millisecond)
	assert.True(t, b.Allow(), "one token refilled")
	assert.False(t, b.Allow())

	clock.advance(time.Hour)
	for i := 0; i < 3; i++ {
		assert.True(t, b.Allow())
	}
	assert.False(t, b.Allow(), "refill is capped at capacity")
}

func TestBucketDefaults(t *testing.T) {
	b := NewBucket(0, 0)
	assert.True(t, b.Allow())
	assert.False(t, b.Allow())
}

func TestBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := NewBuckets(1, time.Minute)
	k.now = clock.now

	assert.True(t, k.Allow("a"))
	assert.False(t, k.Allow("a"))
	assert.True(t, k.Allow("b"), "keys are independent")
	assert.Equal(t, 2, k.Len())
}

func TestBucketsPrune(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := NewBuckets(1, time.Second)
	k.now = clock.now

	for i := 0; i < pruneThreshold; i++ {
		k.Allow(fmt.Sprintf("user:%d", i))
	}
	assert.Equal(t, pruneThreshold, k.Len())

	clock.advance(2 * time.Second)
	k.Allow("fresh")
	assert.Equal(t, 1, k.Len(), "idle keys are dropped")
}
