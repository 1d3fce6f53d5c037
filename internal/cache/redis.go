package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bmg-store/internal/domain"

	"github.com/redis/go-redis/v9"
)

const productListKey = "catalog:products"

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: ttl,
	}
}

func (r *RedisCache) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := r.get(ctx, productKey(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	return r.set(ctx, productKey(product.ID), product)
}

func (r *RedisCache) GetProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.get(ctx, productListKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisCache) SetProducts(ctx context.Context, products []*domain.Product) error {
	return r.set(ctx, productListKey, products)
}

func (r *RedisCache) InvalidateProducts(ctx context.Context) error {
	if err := r.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal catalog entry failed: %w", err)
	}
	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal catalog entry failed: %w", err)
	}

	// Jitter spreads expiry so entries written together do not expire together
	jitter := time.Duration(rand.Int63n(int64(r.baseTTL/5) + 1))
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func productKey(id int64) string {
	return fmt.Sprintf("catalog:product:%d", id)
}
