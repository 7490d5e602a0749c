package cache

import (
	"context"
	"fmt"
	"log"

	appconfig "ingressos_checkout/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and fails fast when it is unreachable.
func NewRedisClient(ctx context.Context, cfg appconfig.RedisConfig) (*redis.Client, error) {
	log.Printf("[checkout][cache] connecting to redis addr=%s", cfg.Addr)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Printf("[checkout][cache] redis connected")
	return client, nil
}
