package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("ab"))
	assert.Len(t, Key("x"), 64)
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v", time.Minute))
	value, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", "v", time.Second))
	require.NoError(t, m.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Second)

	_, ok, _ := m.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestNew_WithoutAddressUsesMemory(t *testing.T) {
	c, err := New(context.Background(), "", "", 0)
	require.NoError(t, err)
	_, isMemory := c.(*Memory)
	assert.True(t, isMemory)
}

func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	key := Key("test", time.Now().String())
	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, "hello", time.Minute))
	value, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", value)
}
