package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*RedisKeyValueStore)(nil)

// RedisKeyValueStore keeps values as plain Redis strings without expiry.
type RedisKeyValueStore struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisKeyValueStore(client *redis.Client) *RedisKeyValueStore {
	return &RedisKeyValueStore{
		client:  client,
		timeout: 3 * time.Second,
	}
}

func (r *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis store: get %s failed: %w", key, err)
	}

	return val, nil
}

func (r *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set %s failed: %w", key, err)
	}
	return nil
}

func (r *RedisKeyValueStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
