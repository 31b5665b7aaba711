package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache opcional para respostas de dashboard. Sem REDIS_URL o serviço
// funciona normalmente, só sem cache.
type Cache struct {
	client *redis.Client
}

func New(redisURL string) *Cache {
	if redisURL == "" {
		return &Cache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return &Cache{}
	}

	return &Cache{client: redis.NewClient(opts)}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) GetJSON(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}
