package push

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSource subscribes to a Redis pub/sub channel.
type RedisSource struct {
	client  *redis.Client
	channel string
}

// NewRedisSource returns a source reading channel.
func NewRedisSource(client *redis.Client, channel string) *RedisSource {
	return &RedisSource{client: client, channel: channel}
}

func (s *RedisSource) Name() string { return "redis" }

func (s *RedisSource) Run(ctx context.Context, handle Handler) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return context.Canceled
			}
			return err
		}
		handle([]byte(msg.Payload))
	}
}
