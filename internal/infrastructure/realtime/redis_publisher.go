package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/souqmarket/backend/internal/application/notification"
	"github.com/souqmarket/backend/internal/infrastructure/config"
)

// RedisPublisher pushes fan-out payloads to redis pub/sub so that other
// instances can serve the same live subscriptions.
type RedisPublisher struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPublisher connects a new Redis client and wraps it as a publisher
func NewRedisPublisher(cfg *config.RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPublisherWithClient(client), nil
}

// NewRedisPublisherWithClient wraps an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisPublisherWithClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client:    client,
		keyPrefix: "souq:",
	}
}

// Publish sends the payload to the topic's redis channel
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	return p.client.Publish(ctx, p.keyPrefix+topic, payload).Err()
}

// Subscribe returns a redis subscription for the given topics
func (p *RedisPublisher) Subscribe(ctx context.Context, topics ...string) *redis.PubSub {
	channels := make([]string, len(topics))
	for i, topic := range topics {
		channels[i] = p.keyPrefix + topic
	}
	return p.client.Subscribe(ctx, channels...)
}

// Close closes the underlying Redis client
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

var _ notification.Publisher = (*RedisPublisher)(nil)
