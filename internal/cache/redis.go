package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis caches through a shared Redis instance.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password
		DB:       0,
	})
	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connect %s: %w", addr, err)
	}
	return &Redis{client: client, ctx: ctx}, nil
}

func (r *Redis) Get(key string, dest any) error {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *Redis) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, key, data, expiration).Err()
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
