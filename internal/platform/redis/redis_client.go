// Package redis opens the optional Redis client.
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/logger"
)

// ErrNotConfigured is returned when no Redis host is set.
var ErrNotConfigured = errors.New("redis not configured")

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	addr := cfg.Addr()
	if addr == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", logger.StringField("address", addr), logger.ErrorField(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", logger.StringField("address", addr))
	return rdb, nil
}
