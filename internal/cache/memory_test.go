package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory[string](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "first")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	// Last write wins.
	c.Set("a", "second")
	v, _ = c.Get("a")
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory[int](time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	_, ok := c.Get("a")
	require.True(t, ok)

	// Just before expiry the entry is still served.
	now = now.Add(time.Hour - time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entries are dropped on read")
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	c := NewMemory[int](0)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(1000 * time.Hour)
	_, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 0, c.SweepExpired())
}

func TestMemorySweepExpired(t *testing.T) {
	c := NewMemory[int](time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("old1", 1)
	c.Set("old2", 2)
	now = now.Add(2 * time.Minute)
	c.Set("fresh", 3)

	assert.Equal(t, 2, c.SweepExpired())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory[int](0)
	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	c.Delete("a") // deleting a missing key is a no-op
}

func TestEntryExpired(t *testing.T) {
	now := time.Now()

	forever := Entry[int]{Value: 1}
	assert.False(t, forever.Expired(now.Add(10000*time.Hour)))

	bounded := Entry[int]{Value: 1, ExpiresAt: now}
	assert.False(t, bounded.Expired(now))
	assert.True(t, bounded.Expired(now.Add(time.Nanosecond)))
}
