package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StockCache, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, ttl), server
}

func TestCacheMissOnEmptyCache(t *testing.T) {
	cache, _ := newTestCache(t, 5*time.Minute)

	_, hit, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheSetThenGet(t *testing.T) {
	cache, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 42))

	quantity, hit, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, quantity)
}

func TestCacheEntriesExpireAfterTTL(t *testing.T) {
	cache, server := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 42))
	server.FastForward(5*time.Minute + time.Second)

	_, hit, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheSetOverwritesAndResetsTTL(t *testing.T) {
	cache, server := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 42))
	server.FastForward(4 * time.Minute)
	require.NoError(t, cache.Set(ctx, 1, 7))
	server.FastForward(4 * time.Minute)

	quantity, hit, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, quantity)
}

func TestCacheKeysAreProductScoped(t *testing.T) {
	cache, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, 10))
	require.NoError(t, cache.Set(ctx, 2, 20))

	quantity, hit, err := cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 20, quantity)
}

func TestCacheGetReportsBackendFailure(t *testing.T) {
	cache, server := newTestCache(t, 5*time.Minute)
	server.Close()

	_, hit, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, hit)
}
