package di

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/filehost"
	"trading_journal/internal/platform/logger"
	"trading_journal/internal/platform/orphans"
)

func TestNewOrphanLedger(t *testing.T) {
	t.Parallel()

	t.Run("redis available", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		ledger := NewOrphanLedger(rdb, "charts", logger.NewNop())

		assert.IsType(t, &orphans.RedisLedger{}, ledger)
	})

	t.Run("fallback", func(t *testing.T) {
		t.Parallel()

		ledger := NewOrphanLedger(nil, "charts", logger.NewNop())

		assert.IsType(t, &orphans.LogLedger{}, ledger)
	})
}

func TestOpenRedis(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, OpenRedis(context.Background(), config.Redis{}, logger.NewNop()))
	})

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		rdb := OpenRedis(context.Background(), config.Redis{Host: mr.Host(), Port: mustPort(t, mr)}, logger.NewNop())

		require.NotNil(t, rdb)
		_ = rdb.Close()
	})
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}

func TestNewFileHosts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		check   func(t *testing.T, fh FileHosts)
		wantErr bool
	}{
		{
			name: "uploadthing",
			cfg: config.Config{
				FileHost:    config.FileHost{Provider: config.ProviderUploadThing},
				UploadThing: config.UploadThing{APIKey: "k", BaseURL: "https://api.uploadthing.com", Timeout: time.Second},
			},
			check: func(t *testing.T, fh FileHosts) {
				assert.IsType(t, &filehost.UploadThing{}, fh.Files)
				assert.Nil(t, fh.S3)
				assert.Equal(t, fh.Files, fh.Deleter())
			},
		},
		{
			name: "none",
			cfg:  config.Config{FileHost: config.FileHost{Provider: config.ProviderNone}},
			check: func(t *testing.T, fh FileHosts) {
				assert.Equal(t, filehost.Noop{}, fh.Files)
				assert.Nil(t, fh.S3)
				assert.Nil(t, fh.Deleter())
			},
		},
		{
			name:    "unknown",
			cfg:     config.Config{FileHost: config.FileHost{Provider: "ftp"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fh, err := NewFileHosts(context.Background(), &tt.cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, fh)
		})
	}
}

func TestNewStore_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := NewStore(context.Background(), &config.Config{Store: config.Store{Backend: "dynamo"}}, logger.NewNop())

	assert.EqualError(t, err, `unknown store backend "dynamo"`)
}
