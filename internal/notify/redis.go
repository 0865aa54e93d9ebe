package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisSink publishes notifications as JSON on a pub/sub channel consumed by
// the admin dashboard.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// FromConfig picks the Redis sink when REDIS_ADDR is set and the log sink
// otherwise, wrapped in Async. The returned close func releases the Redis
// client after pending deliveries finish.
func FromConfig(cfg *config.Config) (*Async, func() error) {
	if cfg.RedisAddr == "" {
		a := NewAsync(LogSink{}, cfg.NotifyTimeout)
		return a, func() error { a.Wait(); return nil }
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a := NewAsync(NewRedisSink(client, cfg.NotifyChannel), cfg.NotifyTimeout)
	return a, func() error {
		a.Wait()
		return client.Close()
	}
}
