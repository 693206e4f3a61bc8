package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trading_journal/internal/app/di"
)

func newMigrateCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the chart table (postgres) or indexes (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			store, err := di.NewStore(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = store.Close(context.Background()) }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate %s: %w", cfg.Store.Backend, err)
			}
			log.Info("migration complete")
			return nil
		},
	}
}
