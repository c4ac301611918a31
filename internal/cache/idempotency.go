package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelapp/internal/domain/models"
)

const keyPrefix = "travelapp:payment:order:"

// OrderCache remembers which gateway order was created for an Idempotency-Key.
// A nil *OrderCache is valid and remembers nothing.
type OrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect parses url and pings the server. An empty url disables caching.
func Connect(ctx context.Context, url string, ttl time.Duration) (*OrderCache, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return New(client, ttl), nil
}

func New(client *redis.Client, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &OrderCache{client: client, ttl: ttl}
}

func (c *OrderCache) Enabled() bool { return c != nil && c.client != nil }

// Get returns the cached order, or ok=false on a miss.
func (c *OrderCache) Get(ctx context.Context, key string) (models.Order, bool, error) {
	if !c.Enabled() || key == "" {
		return models.Order{}, false, nil
	}
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Order{}, false, nil
	}
	if err != nil {
		return models.Order{}, false, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return models.Order{}, false, err
	}
	return order, true, nil
}

func (c *OrderCache) Set(ctx context.Context, key string, order models.Order) error {
	if !c.Enabled() || key == "" {
		return nil
	}
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func (c *OrderCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
