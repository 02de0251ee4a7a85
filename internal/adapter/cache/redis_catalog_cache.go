package cache

import (
	"context"
	"encoding/json"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/redis/go-redis/v9"
)

const keyProducts = "pos:catalog:products"

// RedisCatalogCache keeps the product list warm between remote reads.
// Misses and decode problems are just misses; the caller falls through to
// the remote service.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context) ([]domain.Product, bool) {
	raw, err := c.rdb.Get(ctx, keyProducts).Bytes()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyProducts, raw, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyProducts).Err()
}

var _ usecase.ProductCache = (*RedisCatalogCache)(nil)
