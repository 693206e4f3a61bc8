package adapters

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
)

// chartDocument is the stored shape of a chart record in the images collection.
// Field names match the documents written by earlier deployments.
type chartDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	ImageURL    string        `bson:"imageUrl"`
	TradingDate string        `bson:"tradingDate"`
	UploadedAt  string        `bson:"uploadedAt"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

func toDocument(rec entity.ChartRecord) chartDocument {
	return chartDocument{
		ImageURL:    rec.ImageURL,
		TradingDate: tradingdate.Format(rec.TradingDate),
		UploadedAt:  tradingdate.Format(rec.UploadedAt),
		CreatedAt:   rec.CreatedAt.UTC(),
	}
}

// toEntity converts a decoded document, rejecting anything that does not match the schema.
func (d chartDocument) toEntity() (entity.ChartRecord, error) {
	if d.ID.IsZero() {
		return entity.ChartRecord{}, fmt.Errorf("%w: missing _id", domain.ErrMalformedRecord)
	}
	return decodeRecord(d.ID.Hex(), d.ImageURL, d.TradingDate, d.UploadedAt, d.CreatedAt)
}

// rangeFilter builds the tradingDate filter. Stored dates are canonical strings, so
// string comparison is chronological.
func rangeFilter(r tradingdate.Range) bson.M {
	if r.Unbounded() {
		return bson.M{}
	}
	cond := bson.M{}
	if r.From != "" {
		cond["$gte"] = r.From
	}
	if r.To != "" {
		cond["$lte"] = r.To
	}
	return bson.M{"tradingDate": cond}
}

// gallerySort orders by trading session, newest first, then by creation.
var gallerySort = bson.D{
	{Key: "tradingDate", Value: -1},
	{Key: "createdAt", Value: -1},
}
