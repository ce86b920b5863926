package repositories

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

func usageKey(owner, code string) string {
	return owner + ":" + strings.ToUpper(code)
}

// MemoryPromotionUsage counts how often each owner applied each code.
type MemoryPromotionUsage struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMemoryPromotionUsage() *MemoryPromotionUsage {
	return &MemoryPromotionUsage{counts: make(map[string]int)}
}

func (u *MemoryPromotionUsage) Count(_ context.Context, owner, code string) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.counts[usageKey(owner, code)], nil
}

func (u *MemoryPromotionUsage) Increment(_ context.Context, owner, code string) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	k := usageKey(owner, code)
	u.counts[k]++
	return u.counts[k], nil
}

func (u *MemoryPromotionUsage) Reset(_ context.Context, owner string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for k := range u.counts {
		if strings.HasPrefix(k, owner+":") {
			delete(u.counts, k)
		}
	}
	return nil
}

const promoUsagePrefix = "quickbite:promo-usage:"

type RedisPromotionUsage struct {
	client *redis.Client
}

func NewRedisPromotionUsage(client *redis.Client) *RedisPromotionUsage {
	return &RedisPromotionUsage{client: client}
}

func (u *RedisPromotionUsage) Count(ctx context.Context, owner, code string) (int, error) {
	n, err := u.client.Get(ctx, promoUsagePrefix+usageKey(owner, code)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (u *RedisPromotionUsage) Increment(ctx context.Context, owner, code string) (int, error) {
	n, err := u.client.Incr(ctx, promoUsagePrefix+usageKey(owner, code)).Result()
	return int(n), err
}

func (u *RedisPromotionUsage) Reset(ctx context.Context, owner string) error {
	iter := u.client.Scan(ctx, 0, promoUsagePrefix+owner+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := u.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
