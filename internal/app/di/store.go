// Package di provides factories that wire platform clients into feature components.
package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"trading_journal/internal/feature/charts/adapters"
	"trading_journal/internal/feature/charts/usecase"
	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/db"
	"trading_journal/internal/platform/logger"
	"trading_journal/internal/platform/mongodb"
)

// Store is the chart repository of the configured backend plus its lifecycle hooks.
type Store struct {
	Charts usecase.ChartRepository
	// Ping reports whether the backend is reachable.
	Ping func(ctx context.Context) error
	// Migrate creates the tables or indexes the repository relies on.
	Migrate func(ctx context.Context) error
	// Close releases the connection.
	Close func(ctx context.Context) error
}

// NewStore connects to the backend selected by cfg.Store.Backend.
func NewStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		return newMongoStore(ctx, cfg.Mongo, log)
	case config.BackendPostgres:
		return newPostgresStore(cfg.Database, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newMongoStore(ctx context.Context, cfg config.Mongo, log *logger.Logger) (*Store, error) {
	log.Info("connecting to mongo",
		logger.StringField("database", cfg.Database),
		logger.StringField("collection", cfg.Collection),
	)
	client, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo := adapters.NewChartMongo(mongodb.Collection(client, cfg))
	return &Store{
		Charts: repo,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Migrate: repo.EnsureIndexes,
		Close:   client.Disconnect,
	}, nil
}

func newPostgresStore(cfg config.Database, log *logger.Logger) (*Store, error) {
	gdb, err := db.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	repo := adapters.NewChartGorm(gdb)
	return &Store{
		Charts: repo,
		Ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Migrate: repo.AutoMigrate,
		Close: func(context.Context) error {
			return db.Close(gdb)
		},
	}, nil
}
