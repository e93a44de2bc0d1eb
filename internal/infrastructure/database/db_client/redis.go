package db_client

import (
	"context"
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/redis/go-redis/v9"
	"time"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient parses the configured URL and pings the server.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
