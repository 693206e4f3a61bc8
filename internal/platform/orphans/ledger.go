// Package orphans tracks stored files that outlived their chart record because
// the file host refused to delete them.
package orphans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_journal/internal/platform/logger"
)

// ErrLedgerUnavailable is returned by ledgers that only log and keep nothing to list.
var ErrLedgerUnavailable = errors.New("orphan ledger requires redis")

// Orphan is a file key whose deletion failed.
type Orphan struct {
	Key        string    `json:"key"`
	Reason     string    `json:"reason"`
	RecordedAt time.Time `json:"recordedAt"`
}

// RedisLedger keeps orphan keys in a set and their failure details in a hash.
type RedisLedger struct {
	client    redis.Cmdable
	namespace string
	now       func() time.Time
}

// NewRedisLedger creates a ledger whose keys live under namespace.
func NewRedisLedger(client redis.Cmdable, namespace string) *RedisLedger {
	return &RedisLedger{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

func (l *RedisLedger) setKey() string {
	return fmt.Sprintf("%s:orphans", l.namespace)
}

func (l *RedisLedger) detailKey() string {
	return fmt.Sprintf("%s:orphans:detail", l.namespace)
}

// Record adds key to the ledger. Recording the same key again refreshes its details.
func (l *RedisLedger) Record(ctx context.Context, key, reason string) error {
	data, err := json.Marshal(Orphan{Key: key, Reason: reason, RecordedAt: l.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal orphan: %w", err)
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, l.setKey(), key)
		pipe.HSet(ctx, l.detailKey(), key, data)
		return nil
	})
	return err
}

// List returns every recorded orphan ordered by key.
func (l *RedisLedger) List(ctx context.Context) ([]Orphan, error) {
	keys, err := l.client.SMembers(ctx, l.setKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	details, err := l.client.HMGet(ctx, l.detailKey(), keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Orphan, 0, len(keys))
	for i, key := range keys {
		o := Orphan{Key: key}
		if raw, ok := details[i].(string); ok {
			// Details are informational; a corrupt entry still lists the key.
			_ = json.Unmarshal([]byte(raw), &o)
			o.Key = key
		}
		out = append(out, o)
	}
	return out, nil
}

// Forget removes keys from the ledger.
func (l *RedisLedger) Forget(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, l.setKey(), members...)
		pipe.HDel(ctx, l.detailKey(), keys...)
		return nil
	})
	return err
}

// LogLedger is used when Redis is not configured. Orphans are only written to the log.
type LogLedger struct {
	log *logger.Logger
}

// NewLogLedger creates a LogLedger.
func NewLogLedger(log *logger.Logger) *LogLedger {
	return &LogLedger{log: log}
}

// Record logs the orphaned key.
func (l *LogLedger) Record(ctx context.Context, key, reason string) error {
	l.log.WarnContext(ctx, "orphaned file not tracked",
		logger.StringField("file_key", key),
		logger.StringField("reason", reason),
	)
	return nil
}

// List always fails; nothing is kept.
func (l *LogLedger) List(ctx context.Context) ([]Orphan, error) {
	return nil, ErrLedgerUnavailable
}

// Forget always fails; nothing is kept.
func (l *LogLedger) Forget(ctx context.Context, keys ...string) error {
	return ErrLedgerUnavailable
}
