package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/product_catalog/internal/domain"
)

// RedisCache implements read-through caching for product lookups
type RedisCache struct {
	client     *redis.Client
	productTTL time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, productTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		productTTL: productTTL,
	}
}

func (c *RedisCache) productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// GetProduct retrieves a cached product
func (c *RedisCache) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	val, err := c.client.Get(ctx, c.productKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct stores a product in cache
func (c *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.productKey(product.ID), data, c.productTTL).Err()
}

// InvalidateProduct removes a product from cache. Called after every
// mutation so stale prices, stock counts and image URLs never survive a
// write.
func (c *RedisCache) InvalidateProduct(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.productKey(id)).Err()
}
