package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(start time.Time) (*Cache, *time.Time) {
	now := start
	c := New()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(time.Now())

	c.Set("qr-abc", "pending", 300)

	v, ok := c.Get("qr-abc")
	require.True(t, ok)
	assert.Equal(t, "pending", v)
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(time.Now())

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestLazyExpiry(t *testing.T) {
	c, now := newTestCache(time.Now())

	c.Set("qr-abc", "pending", 300)

	*now = now.Add(301 * time.Second)

	_, ok := c.Get("qr-abc")
	assert.False(t, ok, "expired entry must be absent")

	// entry tidak boleh muncul lagi setelah sekali dianggap expired
	_, ok = c.Get("qr-abc")
	assert.False(t, ok)
}

func TestSetWithoutTTLNeverExpires(t *testing.T) {
	c, now := newTestCache(time.Now())

	c.Set("session", "forever", 0)

	*now = now.Add(24 * 365 * time.Hour)

	v, ok := c.Get("session")
	require.True(t, ok)
	assert.Equal(t, "forever", v)
}

func TestOverwriteResetsTTL(t *testing.T) {
	c, now := newTestCache(time.Now())

	c.Set("k", "v1", 10)
	*now = now.Add(5 * time.Second)
	c.Set("k", "v2", 10)
	*now = now.Add(8 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestDelete(t *testing.T) {
	c, now := newTestCache(time.Now())

	c.Set("k", "v", 10)
	assert.True(t, c.Delete("k"))
	assert.False(t, c.Delete("k"))

	c.Set("k2", "v", 1)
	*now = now.Add(2 * time.Second)
	assert.False(t, c.Delete("k2"), "deleting an expired entry reports absent")
}
