package adapters

import (
	"fmt"
	"time"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
)

// decodeRecord applies the record schema shared by every store.
// Malformed rows fail here instead of reaching rendering with empty fields.
func decodeRecord(id, imageURL, tradingDate, uploadedAt string, createdAt time.Time) (entity.ChartRecord, error) {
	if id == "" {
		return entity.ChartRecord{}, fmt.Errorf("%w: missing id", domain.ErrMalformedRecord)
	}
	if imageURL == "" {
		return entity.ChartRecord{}, fmt.Errorf("%w: %s: missing imageUrl", domain.ErrMalformedRecord, id)
	}
	td, err := tradingdate.Parse(tradingDate)
	if err != nil {
		return entity.ChartRecord{}, fmt.Errorf("%w: %s: tradingDate: %w", domain.ErrMalformedRecord, id, err)
	}
	uploaded, err := tradingdate.Parse(uploadedAt)
	if err != nil {
		return entity.ChartRecord{}, fmt.Errorf("%w: %s: uploadedAt: %w", domain.ErrMalformedRecord, id, err)
	}
	if createdAt.IsZero() {
		return entity.ChartRecord{}, fmt.Errorf("%w: %s: missing createdAt", domain.ErrMalformedRecord, id)
	}

	return entity.ChartRecord{
		ID:          id,
		ImageURL:    imageURL,
		TradingDate: td,
		UploadedAt:  uploaded,
		CreatedAt:   createdAt.UTC(),
	}, nil
}
