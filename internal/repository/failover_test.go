package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockViewCache struct {
	mock.Mock
}

func (m *mockViewCache) GetItemView(ctx context.Context, itemID int64, ownerView bool) (*models.ItemDetail, error) {
	args := m.Called(ctx, itemID, ownerView)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemDetail), args.Error(1)
}

func (m *mockViewCache) SetItemView(ctx context.Context, detail *models.ItemDetail, ownerView bool, ttl time.Duration) error {
	args := m.Called(ctx, detail, ownerView, ttl)
	return args.Error(0)
}

func (m *mockViewCache) InvalidateItemView(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *mockViewCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverViewCache(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)

		detail := testDetail(1, 7)
		primary.On("GetItemView", ctx, int64(1), false).Return(detail, nil).Once()

		got, err := cache.GetItemView(ctx, 1, false)
		require.NoError(t, err)
		assert.Equal(t, detail, got)
		primary.AssertExpectations(t)
		fallback.AssertNotCalled(t, "GetItemView", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PrimaryFailureTripsToFallback", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)

		detail := testDetail(2, 7)
		primary.On("GetItemView", ctx, int64(2), false).Return(nil, errors.New("connection refused")).Once()
		fallback.On("GetItemView", ctx, int64(2), false).Return(detail, nil).Once()

		got, err := cache.GetItemView(ctx, 2, false)
		require.NoError(t, err)
		assert.Equal(t, detail, got)
		assert.True(t, cache.isDown.Load())
	})

	t.Run("TrippedCacheSkipsPrimary", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)
		cache.isDown.Store(true)
		cache.downSince.Store(time.Now().UnixNano())

		fallback.On("GetItemView", ctx, int64(3), false).Return(nil, nil).Once()

		_, err := cache.GetItemView(ctx, 3, false)
		require.NoError(t, err)
		primary.AssertNotCalled(t, "GetItemView", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RecoveryAfterInterval", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)
		cache.isDown.Store(true)
		cache.downSince.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		detail := testDetail(4, 7)
		primary.On("GetItemView", ctx, int64(4), false).Return(detail, nil).Once()

		got, err := cache.GetItemView(ctx, 4, false)
		require.NoError(t, err)
		assert.Equal(t, detail, got)
		assert.False(t, cache.isDown.Load())
	})

	t.Run("SetFailureFallsBack", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)

		detail := testDetail(5, 7)
		primary.On("SetItemView", ctx, detail, true, time.Minute).Return(errors.New("down")).Once()
		fallback.On("SetItemView", ctx, detail, true, time.Minute).Return(nil).Once()

		require.NoError(t, cache.SetItemView(ctx, detail, true, time.Minute))
		assert.True(t, cache.isDown.Load())
	})

	t.Run("InvalidateHitsBothSides", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)

		primary.On("InvalidateItemView", ctx, int64(6)).Return(nil).Once()
		fallback.On("InvalidateItemView", ctx, int64(6)).Return(nil).Once()

		require.NoError(t, cache.InvalidateItemView(ctx, 6))
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("RateLimitFallsBack", func(t *testing.T) {
		primary := new(mockViewCache)
		fallback := new(mockViewCache)
		cache := NewFailoverViewCache(primary, fallback, &logger)

		primary.On("CheckRateLimit", ctx, "user:1", 10, time.Minute).Return(false, errors.New("down")).Once()
		fallback.On("CheckRateLimit", ctx, "user:1", 10, time.Minute).Return(true, nil).Once()

		allowed, err := cache.CheckRateLimit(ctx, "user:1", 10, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.True(t, cache.isDown.Load())
	})
}

func TestFailoverWithRealBackends(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	redisCache, mr := newTestRedisCache(t)
	cache := NewFailoverViewCache(redisCache, NewMemoryViewCache(), &logger)

	require.NoError(t, cache.SetItemView(ctx, testDetail(1, 7), false, time.Minute))
	got, err := cache.GetItemView(ctx, 1, false)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Kill Redis; reads trip to memory and writes keep working.
	mr.Close()

	require.NoError(t, cache.SetItemView(ctx, testDetail(2, 7), false, time.Minute))
	assert.True(t, cache.isDown.Load())

	got, err = cache.GetItemView(ctx, 2, false)
	require.NoError(t, err)
	require.NotNil(t, got)
}
