package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
	"trading_journal/internal/feature/charts/usecase"
)

// ChartModel is the relational shape of a chart record.
// trading_date and uploaded_at hold canonical timestamp strings, as in the document store.
type ChartModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ImageURL    string    `gorm:"size:2048;not null"`
	TradingDate string    `gorm:"size:24;not null;index:chart_trading_date_created,priority:1"`
	UploadedAt  string    `gorm:"size:24;not null"`
	CreatedAt   time.Time `gorm:"not null;index:chart_trading_date_created,priority:2"`
}

func (ChartModel) TableName() string {
	return "chart_records"
}

// chartGorm is the gorm implementation of usecase.ChartRepository.
type chartGorm struct {
	db *gorm.DB
}

var _ usecase.ChartRepository = (*chartGorm)(nil)

// NewChartGorm creates a repository over db.
func NewChartGorm(db *gorm.DB) *chartGorm {
	return &chartGorm{db: db}
}

func (r *chartGorm) Insert(ctx context.Context, rec entity.ChartRecord) (entity.ChartRecord, error) {
	m := ChartModel{
		ID:          uuid.NewString(),
		ImageURL:    rec.ImageURL,
		TradingDate: tradingdate.Format(rec.TradingDate),
		UploadedAt:  tradingdate.Format(rec.UploadedAt),
		CreatedAt:   rec.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.ChartRecord{}, err
	}
	return m.toEntity()
}

func (r *chartGorm) List(ctx context.Context, rg tradingdate.Range) ([]entity.ChartRecord, error) {
	q := r.db.WithContext(ctx).Model(&ChartModel{})
	if rg.From != "" {
		q = q.Where("trading_date >= ?", rg.From)
	}
	if rg.To != "" {
		q = q.Where("trading_date <= ?", rg.To)
	}

	var rows []ChartModel
	if err := q.Order("trading_date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.ChartRecord, 0, len(rows))
	for _, m := range rows {
		rec, err := m.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *chartGorm) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ChartModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AutoMigrate creates or updates the chart_records table.
func (r *chartGorm) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&ChartModel{})
}

func (m ChartModel) toEntity() (entity.ChartRecord, error) {
	return decodeRecord(m.ID, m.ImageURL, m.TradingDate, m.UploadedAt, m.CreatedAt)
}
