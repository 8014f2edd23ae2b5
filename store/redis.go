package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores sonic-serialized values in Redis. TTL zero means the
// records do not expire; archival is an operator concern.
type RedisCache[S any] struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache[S any](client *redis.Client, ttl time.Duration) *RedisCache[S] {
	return &RedisCache[S]{client: client, ttl: ttl}
}

func (r *RedisCache[S]) Set(ctx context.Context, key string, val S) error {
	payload, err := sonic.Marshal(val)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	return r.client.Set(ctx, key, payload, r.ttl).Err()
}

func (r *RedisCache[S]) SetNX(ctx context.Context, key string, val S) (bool, error) {
	payload, err := sonic.Marshal(val)
	if err != nil {
		return false, fmt.Errorf("store: marshal %q: %w", key, err)
	}
	created, err := r.client.SetNX(ctx, key, payload, r.ttl).Result()
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *RedisCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	var zero S
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var val S
	if err := sonic.Unmarshal(payload, &val); err != nil {
		return zero, false, fmt.Errorf("store: unmarshal %q: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisCache[S]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache[S]) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
