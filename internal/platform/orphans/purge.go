package orphans

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoFileHost is returned by Purge when there is no file host that can delete files.
var ErrNoFileHost = errors.New("no file host configured to delete orphaned files")

// Store is the ledger surface used by Purge.
type Store interface {
	List(ctx context.Context) ([]Orphan, error)
	Forget(ctx context.Context, keys ...string) error
}

// FileDeleter deletes stored files by key.
type FileDeleter interface {
	DeleteFiles(ctx context.Context, keys ...string) error
}

// PurgeReport summarizes a purge run.
type PurgeReport struct {
	Deleted []string
	Failed  map[string]error
}

// Purge retries deletion of every recorded orphan once and forgets the keys
// the file host accepted. Keys that fail again stay in the ledger.
// A nil files leaves the ledger untouched and returns ErrNoFileHost.
func Purge(ctx context.Context, store Store, files FileDeleter) (PurgeReport, error) {
	report := PurgeReport{Failed: map[string]error{}}
	if files == nil {
		return report, ErrNoFileHost
	}

	list, err := store.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list orphans: %w", err)
	}

	for _, o := range list {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := files.DeleteFiles(ctx, o.Key); err != nil {
			report.Failed[o.Key] = err
			continue
		}
		report.Deleted = append(report.Deleted, o.Key)
	}

	if len(report.Deleted) > 0 {
		if err := store.Forget(ctx, report.Deleted...); err != nil {
			return report, fmt.Errorf("forget purged orphans: %w", err)
		}
	}
	return report, nil
}
