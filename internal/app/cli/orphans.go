package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"trading_journal/internal/app/di"
	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/orphans"
)

func newOrphansCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Inspect and purge stored files whose record was deleted",
	}

	withLedger := func(run func(ctx context.Context, cfg *config.Config, ledger di.OrphanLedger, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			rdb := di.OpenRedis(ctx, cfg.Redis, log)
			if rdb != nil {
				defer func() { _ = rdb.Close() }()
			}
			return run(ctx, cfg, di.NewOrphanLedger(rdb, cfg.Redis.Namespace, log), cmd.OutOrStdout())
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List orphaned file keys",
			RunE: withLedger(func(ctx context.Context, _ *config.Config, ledger di.OrphanLedger, out io.Writer) error {
				return listOrphans(ctx, ledger, out)
			}),
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Retry deleting every orphaned file once (needs a file host other than none)",
			RunE: withLedger(func(ctx context.Context, cfg *config.Config, ledger di.OrphanLedger, out io.Writer) error {
				files, err := di.NewFileHosts(ctx, cfg)
				if err != nil {
					return err
				}
				return purgeOrphans(ctx, ledger, files.Deleter(), out)
			}),
		},
	)
	return cmd
}

func listOrphans(ctx context.Context, store orphans.Store, out io.Writer) error {
	list, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "no orphaned files")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tRECORDED AT\tREASON")
	for _, o := range list {
		recorded := "-"
		if !o.RecordedAt.IsZero() {
			recorded = o.RecordedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Key, recorded, o.Reason)
	}
	return tw.Flush()
}

func purgeOrphans(ctx context.Context, store orphans.Store, files orphans.FileDeleter, out io.Writer) error {
	report, err := orphans.Purge(ctx, store, files)
	for _, key := range report.Deleted {
		fmt.Fprintf(out, "deleted %s\n", key)
	}
	failed := make([]string, 0, len(report.Failed))
	for key := range report.Failed {
		failed = append(failed, key)
	}
	sort.Strings(failed)
	for _, key := range failed {
		fmt.Fprintf(out, "failed  %s: %v\n", key, report.Failed[key])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d deleted, %d still orphaned\n", len(report.Deleted), len(failed))
	return nil
}
