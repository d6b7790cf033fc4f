package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverViewCache serves from the primary (Redis) until it errors, then
// trips to the fallback (memory) and retries the primary after a minute.
type FailoverViewCache struct {
	primary   domain.ViewCache
	fallback  domain.ViewCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	downSince atomic.Int64
}

const recoveryInterval = time.Minute

func NewFailoverViewCache(primary, fallback domain.ViewCache, logger *zerolog.Logger) *FailoverViewCache {
	return &FailoverViewCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverViewCache) usePrimary() bool {
	if !c.isDown.Load() {
		return true
	}
	downSince := time.Unix(0, c.downSince.Load())
	if time.Since(downSince) > recoveryInterval {
		c.isDown.Store(false)
		return true
	}
	return false
}

func (c *FailoverViewCache) trip(err error) {
	c.logger.Error().Err(err).Msg("primary view cache failed, falling back to memory")
	c.isDown.Store(true)
	c.downSince.Store(time.Now().UnixNano())
}

func (c *FailoverViewCache) GetItemView(ctx context.Context, itemID int64, ownerView bool) (*models.ItemDetail, error) {
	if c.usePrimary() {
		detail, err := c.primary.GetItemView(ctx, itemID, ownerView)
		if err == nil {
			return detail, nil
		}
		c.trip(err)
	}
	return c.fallback.GetItemView(ctx, itemID, ownerView)
}

func (c *FailoverViewCache) SetItemView(ctx context.Context, detail *models.ItemDetail, ownerView bool, ttl time.Duration) error {
	if c.usePrimary() {
		err := c.primary.SetItemView(ctx, detail, ownerView, ttl)
		if err == nil {
			return nil
		}
		c.trip(err)
	}
	return c.fallback.SetItemView(ctx, detail, ownerView, ttl)
}

func (c *FailoverViewCache) InvalidateItemView(ctx context.Context, itemID int64) error {
	// Invalidation goes to both sides; a stale fallback entry must not
	// resurface after recovery.
	var primaryErr error
	if c.usePrimary() {
		if primaryErr = c.primary.InvalidateItemView(ctx, itemID); primaryErr != nil {
			c.trip(primaryErr)
		}
	}
	return c.fallback.InvalidateItemView(ctx, itemID)
}

func (c *FailoverViewCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c.usePrimary() {
		allowed, err := c.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		c.trip(err)
	}
	return c.fallback.CheckRateLimit(ctx, key, limit, window)
}
