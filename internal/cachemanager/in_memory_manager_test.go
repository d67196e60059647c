package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type renderKey string

type rendered struct {
	Width int
	Text  string
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := NewInMemoryCacheManager[renderKey, rendered]("markdown", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "80:abc", rendered{Width: 80, Text: "hello"}, DefaultExpiration)

	got, ok := cache.Get(ctx, "80:abc")
	require.True(t, ok)
	require.Equal(t, rendered{Width: 80, Text: "hello"}, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "k", "v", 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	_, ok := cache.GetWithRefresh(ctx, "k", time.Minute)
	require.False(t, ok)

	cache.Set(ctx, "k", "v", 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "k", time.Hour)
	require.True(t, ok)
	require.Equal(t, "v", got)

	time.Sleep(80 * time.Millisecond)
	got, ok = cache.Get(ctx, "k")
	require.True(t, ok, "refresh should have extended the ttl")
	require.Equal(t, "v", got)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)
	cache.Set(ctx, "c", 3, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Delete(ctx))

	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, 0, cache.Len())
}
