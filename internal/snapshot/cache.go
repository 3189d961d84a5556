package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

const cacheKey = "dataset:current"

// Cache is the cross-instance dataset cache. Misses are not errors; the
// caller falls through to the repositories.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a redis client as a dataset cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached dataset, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context) (*domain.Dataset, error) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &ds, nil
}

// Set stores the dataset with the configured TTL.
func (c *Cache) Set(ctx context.Context, ds *domain.Dataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached dataset so the next read hits the database.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
