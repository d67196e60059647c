package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (string, bool) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func upper(calls *int) func(context.Context, string) (string, error) {
	return func(_ context.Context, in string) (string, error) {
		*calls++
		return "<" + in + ">", nil
	}
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	m := &mockCacheManager{}
	calls := 0
	rtc := NewReadThroughCache[string, string, string](m, upper(&calls), true)

	got, err := rtc.Get(context.Background(), "k", "body", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<body>", got)

	got, err = rtc.GetWithRefresh(context.Background(), "k", "body", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<body>", got)

	require.Equal(t, 2, calls)
	m.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Hit(t *testing.T) {
	m := &mockCacheManager{}
	m.On("Get", mock.Anything, "k").Return("cached", true).Once()

	calls := 0
	rtc := NewReadThroughCache[string, string, string](m, upper(&calls), false)

	got, err := rtc.Get(context.Background(), "k", "body", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "cached", got)
	require.Zero(t, calls)
	m.AssertExpectations(t)
}

func TestReadThroughCache_MissStores(t *testing.T) {
	m := &mockCacheManager{}
	m.On("Get", mock.Anything, "k").Return("", false).Once()
	m.On("Set", mock.Anything, "k", "<body>", time.Minute).Once()

	calls := 0
	rtc := NewReadThroughCache[string, string, string](m, upper(&calls), false)

	got, err := rtc.Get(context.Background(), "k", "body", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<body>", got)
	require.Equal(t, 1, calls)
	m.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	m := &mockCacheManager{}
	m.On("GetWithRefresh", mock.Anything, "k", time.Hour).Return("", false).Once()
	m.On("Set", mock.Anything, "k", "<body>", time.Hour).Once()

	calls := 0
	rtc := NewReadThroughCache[string, string, string](m, upper(&calls), false)

	got, err := rtc.GetWithRefresh(context.Background(), "k", "body", time.Hour)
	require.NoError(t, err)
	require.Equal(t, "<body>", got)
	m.AssertExpectations(t)
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	m := &mockCacheManager{}
	m.On("Get", mock.Anything, "k").Return("", false).Once()

	boom := errors.New("render failed")
	rtc := NewReadThroughCache[string, string, string](m,
		func(context.Context, string) (string, error) { return "", boom },
		false,
	)

	_, err := rtc.Get(context.Background(), "k", "body", time.Minute)
	require.ErrorIs(t, err, boom)
	m.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_WithInMemoryManager(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, string, string](cache, upper(&calls), false)

	for range 3 {
		got, err := rtc.Get(context.Background(), "k", "body", time.Minute)
		require.NoError(t, err)
		require.Equal(t, "<body>", got)
	}
	require.Equal(t, 1, calls)
}
