package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache stores rendered JSON responses under a key prefix. A nil
// client turns every call into a miss.
type ResponseCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewResponseCache(client *redis.Client, prefix string, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (c *ResponseCache) Set(ctx context.Context, key string, value []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

// Invalidate drops every key under the prefix.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
