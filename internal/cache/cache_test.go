package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("summary_admin_2024", 42)

	v, ok := c.Get("summary_admin_2024")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("key", "value")

	_, ok := c.Get("key")
	assert.True(t, ok)

	// Advance past the TTL; the entry is evicted on access.
	now = now.Add(2 * time.Minute)
	_, ok = c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheSetWithTTL(t *testing.T) {
	c := New(time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.SetWithTTL("long", "value", time.Hour)
	c.Set("short", "value")

	now = now.Add(10 * time.Minute)
	assert.True(t, c.Has("long"))
	assert.False(t, c.Has("short"))
}

func TestCacheDefaultTTL(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.ttl)

	c = New(-time.Second)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("summary_admin", 1)
	c.Set("summary_user", 2)
	c.Set("monthly_data_admin", 3)

	dropped := c.InvalidatePrefix("summary")
	assert.Equal(t, 2, dropped)
	assert.False(t, c.Has("summary_admin"))
	assert.False(t, c.Has("summary_user"))
	assert.True(t, c.Has("monthly_data_admin"))
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "summary_admin_2024_Marzo", Key("summary", "admin", 2024, "Marzo"))
	assert.Equal(t, "base", Key("base"))
	assert.Equal(t, "k_true_1.5", Key("k", true, 1.5))
}
