package libs

import (
	"context"
	"encoding/json"

	"quickbite/models"

	"github.com/redis/go-redis/v9"
)

const OrderEventsChannel = "quickbite:order-events"

// RedisPublisher broadcasts order events on a redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = OrderEventsChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Close leaves the shared client open.
func (p *RedisPublisher) Close() error { return nil }
