// Package usecase implements the business logic for chart records.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
	"trading_journal/internal/platform/logger"
)

// ChartRepository abstracts the persistence layer for chart records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ChartRepository interface {
	// Insert stores a new record and returns it with the storage-assigned ID.
	Insert(ctx context.Context, rec entity.ChartRecord) (entity.ChartRecord, error)
	// List returns records inside r, newest trading date first.
	List(ctx context.Context, r tradingdate.Range) ([]entity.ChartRecord, error)
	// Delete removes a record by ID. It returns domain.ErrNotFound when nothing matched.
	Delete(ctx context.Context, id string) error
}

// FileHost deletes stored binaries by storage key.
type FileHost interface {
	DeleteFiles(ctx context.Context, keys ...string) error
}

// OrphanLedger remembers stored files whose deletion failed.
type OrphanLedger interface {
	Record(ctx context.Context, key, reason string) error
}

// Option customizes a ChartUsecase.
type Option func(*ChartUsecase)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(u *ChartUsecase) {
		u.now = now
	}
}

// ChartUsecase creates, lists and deletes chart records.
type ChartUsecase struct {
	repo    ChartRepository
	files   FileHost
	orphans OrphanLedger
	log     *logger.Logger
	now     func() time.Time
}

// NewChartUsecase creates a new ChartUsecase.
func NewChartUsecase(repo ChartRepository, files FileHost, orphans OrphanLedger, log *logger.Logger, opts ...Option) *ChartUsecase {
	u := &ChartUsecase{
		repo:    repo,
		files:   files,
		orphans: orphans,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create normalizes the trading date and stores a new record for an uploaded image.
// Duplicate uploads for the same date are allowed.
func (u *ChartUsecase) Create(ctx context.Context, imageURL, tradingDate string) (entity.ChartRecord, error) {
	imageURL = strings.TrimSpace(imageURL)
	tradingDate = strings.TrimSpace(tradingDate)
	if imageURL == "" || tradingDate == "" {
		return entity.ChartRecord{}, fmt.Errorf("%w: imageUrl and tradingDate are required", domain.ErrValidation)
	}

	day, err := tradingdate.StartOfDay(tradingDate)
	if err != nil {
		return entity.ChartRecord{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	now := u.now().UTC()
	rec, err := u.repo.Insert(ctx, entity.ChartRecord{
		ImageURL:    imageURL,
		TradingDate: day,
		UploadedAt:  now,
		CreatedAt:   now,
	})
	if err != nil {
		return entity.ChartRecord{}, fmt.Errorf("insert chart record: %w", err)
	}

	u.log.InfoContext(ctx, "chart record saved",
		logger.StringField("id", rec.ID),
		logger.StringField("original_date", tradingDate),
		logger.StringField("stored_date", tradingdate.Format(rec.TradingDate)),
	)
	return rec, nil
}

// List returns the records whose trading date falls within [startDate, endDate].
// Both bounds are optional calendar dates; the end date is inclusive of its whole day.
func (u *ChartUsecase) List(ctx context.Context, startDate, endDate string) ([]entity.ChartRecord, error) {
	r, err := tradingdate.NewRange(strings.TrimSpace(startDate), strings.TrimSpace(endDate))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	recs, err := u.repo.List(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("list chart records: %w", err)
	}
	return recs, nil
}

// Delete removes the record and then the stored image.
// The image deletion is best-effort: a failure is logged and recorded in the orphan ledger,
// and the call still succeeds because the record is already gone.
func (u *ChartUsecase) Delete(ctx context.Context, id, imageURL string) error {
	id = strings.TrimSpace(id)
	imageURL = strings.TrimSpace(imageURL)
	if id == "" || imageURL == "" {
		return fmt.Errorf("%w: id and url are required", domain.ErrValidation)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete chart record %s: %w", id, err)
	}

	key := StorageKey(imageURL)
	if key == "" {
		u.log.WarnContext(ctx, "no storage key in image url", logger.StringField("url", imageURL))
		return nil
	}

	if err := u.files.DeleteFiles(ctx, key); err != nil {
		u.log.WarnContext(ctx, "stored image not deleted",
			logger.StringField("id", id),
			logger.StringField("key", key),
			logger.ErrorField(err),
		)
		if recErr := u.orphans.Record(ctx, key, err.Error()); recErr != nil {
			u.log.ErrorContext(ctx, "failed to record orphaned file",
				logger.StringField("key", key),
				logger.ErrorField(recErr),
			)
		}
	}
	return nil
}
