package di

import (
	"context"

	"github.com/redis/go-redis/v9"

	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/logger"
	"trading_journal/internal/platform/orphans"
	infraredis "trading_journal/internal/platform/redis"
)

// OrphanLedger records, lists and forgets orphaned file keys.
type OrphanLedger interface {
	Record(ctx context.Context, key, reason string) error
	orphans.Store
}

var (
	_ OrphanLedger = (*orphans.RedisLedger)(nil)
	_ OrphanLedger = (*orphans.LogLedger)(nil)
)

// OpenRedis connects to Redis when configured. It returns nil when Redis is not
// configured or unreachable; callers fall back to Redis-less components.
func OpenRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) *redis.Client {
	rdb, err := infraredis.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn("Redis unavailable. Orphaned files will only be logged.", logger.ErrorField(err))
		return nil
	}
	return rdb
}

// NewOrphanLedger returns a Redis-backed ledger when Redis is available.
// Otherwise, it falls back to a ledger that only logs.
func NewOrphanLedger(rdb *redis.Client, namespace string, log *logger.Logger) OrphanLedger {
	if rdb != nil {
		return orphans.NewRedisLedger(rdb, namespace)
	}
	return orphans.NewLogLedger(log)
}
