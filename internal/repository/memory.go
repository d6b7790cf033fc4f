package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/models"
)

// MemoryViewCache is the in-process fallback used when Redis is absent or
// down. Expiry is checked lazily on read.
type MemoryViewCache struct {
	views      sync.Map
	rateLimits sync.Map
}

type viewEntry struct {
	detail    *models.ItemDetail
	expiresAt time.Time
}

type rateLimitEntry struct {
	mu        sync.Mutex
	count     int
	expiresAt time.Time
}

func NewMemoryViewCache() *MemoryViewCache {
	return &MemoryViewCache{}
}

func (c *MemoryViewCache) GetItemView(ctx context.Context, itemID int64, ownerView bool) (*models.ItemDetail, error) {
	val, ok := c.views.Load(itemViewKey(itemID, ownerView))
	if !ok {
		return nil, nil
	}
	entry := val.(*viewEntry)
	if time.Now().After(entry.expiresAt) {
		c.views.Delete(itemViewKey(itemID, ownerView))
		return nil, nil
	}
	return entry.detail, nil
}

func (c *MemoryViewCache) SetItemView(ctx context.Context, detail *models.ItemDetail, ownerView bool, ttl time.Duration) error {
	c.views.Store(itemViewKey(detail.ID, ownerView), &viewEntry{
		detail:    detail,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (c *MemoryViewCache) InvalidateItemView(ctx context.Context, itemID int64) error {
	c.views.Delete(itemViewKey(itemID, true))
	c.views.Delete(itemViewKey(itemID, false))
	return nil
}

func (c *MemoryViewCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, _ := c.rateLimits.LoadOrStore(key, &rateLimitEntry{})
	entry := val.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.count == 0 || now.After(entry.expiresAt) {
		entry.count = 1
		entry.expiresAt = now.Add(window)
	} else {
		entry.count++
	}
	return entry.count <= limit, nil
}
