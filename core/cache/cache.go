package cache

import (
	"context"
	"encoding/json"
	"time"

	"calendar-insights/core/config"
	"calendar-insights/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin Redis wrapper for TTL-cached query results. A nil *Cache
// is valid and behaves as a permanent miss, so callers can run without Redis.
type Cache struct {
	client *redis.Client
}

func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		logger.Info("Cache:New:Disabled", "reason", "REDIS_ADDR not set")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}
}

// GetJSON reads key into dest, returning false on a miss or any Redis error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetJSON:Error", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Cache:GetJSON:Unmarshal", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Cache:SetJSON:Marshal", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("Cache:SetJSON:Error", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
