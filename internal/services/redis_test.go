package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr(), testLogger())
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	require.NoError(t, cache.Set(ctx, "world:abc", "A floating city.", time.Hour))
	got, err := cache.Get(ctx, "world:abc")
	require.NoError(t, err)
	assert.Equal(t, "A floating city.", got)
	assert.True(t, mr.Exists("world:abc"))

	missing, err := cache.Get(ctx, "world:missing")
	require.NoError(t, err, "a missing key is not an error")
	assert.Empty(t, missing)

	mr.FastForward(2 * time.Hour)
	expired, err := cache.Get(ctx, "world:abc")
	require.NoError(t, err)
	assert.Empty(t, expired)

	require.NoError(t, cache.Set(ctx, "a", "1", 0))
	require.NoError(t, cache.Del(ctx, "a"))
	assert.False(t, mr.Exists("a"))
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr(), testLogger())
	defer func() { _ = cache.Close() }()
	mr.Close()

	ctx := context.Background()
	assert.Error(t, cache.Ping(ctx))
	_, err := cache.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, cache.WaitForConnection(ctx, 2, time.Millisecond))
}

func TestRedisCache_WaitForConnection(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr(), testLogger())
	defer func() { _ = cache.Close() }()

	assert.NoError(t, cache.WaitForConnection(context.Background(), 3, time.Millisecond))
}
