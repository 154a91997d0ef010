package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSender публикует уведомления в канал Redis (PUBLISH), их забирает портал
type RedisSender struct {
	client  *redis.Client
	channel string
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisSender создает отправителя в канал
func NewRedisSender(client *redis.Client, channel string) *RedisSender {
	return &RedisSender{client: client, channel: channel}
}

// Send публикует сообщение JSON-ом
func (s *RedisSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Publish(ctx, s.channel, body).Err(); err != nil {
		return fmt.Errorf("%w: redis publish to %s: %v", ErrPublish, s.channel, err)
	}
	return nil
}

// Close закрывает клиент Redis
func (s *RedisSender) Close() error {
	return s.client.Close()
}
