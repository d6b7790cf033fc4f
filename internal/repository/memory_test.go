package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryViewCache_ItemViews(t *testing.T) {
	cache := NewMemoryViewCache()
	ctx := context.Background()

	t.Run("MissIsNilNil", func(t *testing.T) {
		detail, err := cache.GetItemView(ctx, 42, false)
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, cache.SetItemView(ctx, testDetail(1, 7), false, time.Minute))

		got, err := cache.GetItemView(ctx, 1, false)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "drill", got.Name)
	})

	t.Run("LazyExpiry", func(t *testing.T) {
		require.NoError(t, cache.SetItemView(ctx, testDetail(2, 7), false, -time.Second))

		got, err := cache.GetItemView(ctx, 2, false)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidateRemovesBothRoles", func(t *testing.T) {
		require.NoError(t, cache.SetItemView(ctx, testDetail(3, 7), true, time.Minute))
		require.NoError(t, cache.SetItemView(ctx, testDetail(3, 7), false, time.Minute))

		require.NoError(t, cache.InvalidateItemView(ctx, 3))
		owner, err := cache.GetItemView(ctx, 3, true)
		require.NoError(t, err)
		assert.Nil(t, owner)
		public, err := cache.GetItemView(ctx, 3, false)
		require.NoError(t, err)
		assert.Nil(t, public)
	})
}

func TestMemoryViewCache_CheckRateLimit(t *testing.T) {
	cache := NewMemoryViewCache()
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			allowed, err := cache.CheckRateLimit(ctx, "user:1", 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := cache.CheckRateLimit(ctx, "user:1", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("ExpiredWindowResets", func(t *testing.T) {
		allowed, err := cache.CheckRateLimit(ctx, "user:2", 1, -time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)

		// The first window is already expired, so the next call starts a
		// fresh one.
		allowed, err = cache.CheckRateLimit(ctx, "user:2", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
