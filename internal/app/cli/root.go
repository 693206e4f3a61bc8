// Package cli defines the journal command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/logger"
)

// NewRootCommand builds the journal command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:   "journal",
		Short: "Trading chart journal",
		Long: `Stores trading chart images tagged with a trading date and serves a
gallery filterable by date range. Image bytes live on a file host
(UploadThing or S3); this service keeps the metadata.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing config.yaml")

	load := func() (*config.Config, *logger.Logger, error) {
		cfg, err := config.Load(configDir)
		if err != nil {
			return nil, nil, err
		}
		log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		return cfg, log, nil
	}

	root.AddCommand(
		newServeCommand(load),
		newMigrateCommand(load),
		newOrphansCommand(load),
	)
	return root
}

// loader reads configuration and builds the process logger.
type loader func() (*config.Config, *logger.Logger, error)

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
