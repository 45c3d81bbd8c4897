// Package cache keeps the decoded product catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "catalog:v:"
	CacheVersionKey        = "catalog:version"
	DefaultCacheTTL        = 5 * time.Minute
)

// CatalogCache stores the product list under a versioned key. Invalidate
// bumps the version so every older entry becomes unreachable and expires on
// its own. A nil *CatalogCache is a cache that always misses.
type CatalogCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogCache{redis: client, ttl: ttl, logger: logger}
}

// GetProducts returns the cached catalog, if any.
func (c *CatalogCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	version, err := c.getCacheVersion(ctx)
	if err != nil {
		c.logger.Warn("Catalog cache version unavailable", zap.Error(err))
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.listKey(version)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read catalog cache", zap.Error(err))
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		c.logger.Warn("Failed to unmarshal cached catalog", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProducts caches products under the current version.
func (c *CatalogCache) SetProducts(ctx context.Context, products []models.Product) {
	if c == nil {
		return
	}
	version, err := c.getCacheVersion(ctx)
	if err != nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("Failed to marshal catalog for cache", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, c.listKey(version), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache catalog", zap.Error(err))
	}
}

// Invalidate drops every cached catalog by bumping the version.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	newVersion, err := c.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	c.logger.Info("Catalog cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// getCacheVersion reads the version, initialising it on first use.
func (c *CatalogCache) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		ver, err := c.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}
		lastErr = err

		if errors.Is(err, redis.Nil) {
			ok, setErr := c.redis.SetNX(ctx, CacheVersionKey, 1, 0).Result()
			if setErr == nil && ok {
				return 1, nil
			}
			lastErr = setErr
			continue
		}

		if i < maxRetries-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}
	return 0, fmt.Errorf("failed to get cache version after %d retries: %v", maxRetries, lastErr)
}

func (c *CatalogCache) listKey(version int64) string {
	return fmt.Sprintf("%s%d:products", ProductListCachePrefix, version)
}
