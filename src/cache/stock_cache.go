// Package cache provides the process-wide read-through stock cache backing
// the single-item lookup endpoint. Entries expire by TTL only; the bulk
// coordinators never consult or invalidate this cache, so a cached quantity
// may lag the warehouse by up to the TTL window after a retrieve or restock.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/narender/stock-service/common/config"
	"github.com/narender/stock-service/common/globals"
)

const keyPrefix = "stock:"

// StockCache stores per-product quantities in redis with a fixed TTL.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewClient builds the redis client from configuration.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.REDIS_ADDR,
		Password: cfg.REDIS_PASSWORD,
		DB:       cfg.REDIS_DB,
	})
}

// New wraps a redis client as a stock cache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{
		client: client,
		ttl:    ttl,
		logger: globals.Logger(),
	}
}

func key(productID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, productID)
}

// Get returns the cached quantity and whether an unexpired entry was present.
func (c *StockCache) Get(ctx context.Context, productID int) (int, bool, error) {
	quantity, err := c.client.Get(ctx, key(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache get for product %d: %w", productID, err)
	}
	return quantity, true, nil
}

// Set stores the quantity under the cache TTL, overwriting any prior entry.
func (c *StockCache) Set(ctx context.Context, productID, quantity int) error {
	if err := c.client.Set(ctx, key(productID), quantity, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for product %d: %w", productID, err)
	}
	c.logger.DebugContext(ctx, "Stock cache entry stored",
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Duration("ttl", c.ttl))
	return nil
}
