package dataflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tradecouncil/pkg/logger"
)

// Cache is a read-through JSON cache over Redis. A nil Cache is valid
// and disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest and reports whether
// a usable entry was found. Cache errors are logged, never surfaced.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warnf("cache get %s: %v", key, err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnf("cache decode %s: %v", key, err)
		return false
	}

	return true
}

// Set stores val under key for the cache TTL. Failures are logged only.
func (c *Cache) Set(ctx context.Context, key string, val interface{}) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(val)
	if err != nil {
		logger.Warnf("cache encode %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warnf("cache set %s: %v", key, err)
	}
}
