package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr string
	DB   int
}

// NewRedisClient connects and pings Redis. Callers may run without a cache
// when it returns an error.
func NewRedisClient(ctx context.Context, cfg Config, log logrus.FieldLogger) (*redis.Client, error) {
	log.WithField("addr", cfg.Addr).Info("connecting to redis")

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected")

	return client, nil
}
