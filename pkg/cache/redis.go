package cache

import (
	"context"
	"fmt"
	"time"

	"ticket-service/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a connected Redis client or an error if the server does not answer.
func NewRedis(cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}
