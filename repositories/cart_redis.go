package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quickbite/models"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "quickbite:cart:"

// RedisCartStore keeps each cart as one JSON value that expires after ttl
// without activity.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) Get(ctx context.Context, owner string) (*models.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+owner).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.Cart{Owner: owner, Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, err
	}
	cart.Owner = owner
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKeyPrefix+cart.Owner, raw, s.ttl).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, owner string) error {
	return s.client.Del(ctx, cartKeyPrefix+owner).Err()
}
