package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisViewCache keeps rendered item views and fixed-window rate counters in
// Redis. Item views are stored per role (owner vs public) because the owner
// view carries booking projections.
type RedisViewCache struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

func NewRedisViewCache(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{client: client}
}

func itemViewKey(itemID int64, ownerView bool) string {
	role := "public"
	if ownerView {
		role = "owner"
	}
	return fmt.Sprintf("item_view:%d:%s", itemID, role)
}

func (r *RedisViewCache) GetItemView(ctx context.Context, itemID int64, ownerView bool) (*models.ItemDetail, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, itemViewKey(itemID, ownerView)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item view from redis: %w", err)
	}

	var detail models.ItemDetail
	if err := json.Unmarshal([]byte(val), &detail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item view: %w", err)
	}
	return &detail, nil
}

func (r *RedisViewCache) SetItemView(ctx context.Context, detail *models.ItemDetail, ownerView bool, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal item view: %w", err)
	}
	if err := r.client.Set(ctx, itemViewKey(detail.ID, ownerView), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set item view in redis: %w", err)
	}
	return nil
}

func (r *RedisViewCache) InvalidateItemView(ctx context.Context, itemID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	keys := []string{itemViewKey(itemID, true), itemViewKey(itemID, false)}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate item view: %w", err)
	}
	return nil
}

func (r *RedisViewCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	counterKey := "rate_limit:" + key
	count, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		r.client.Expire(ctx, counterKey, window)
	}
	return count <= int64(limit), nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
