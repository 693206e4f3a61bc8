// Package adapters provides the chart repository implementations.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
	"trading_journal/internal/feature/charts/usecase"
)

// chartMongo is the MongoDB implementation of usecase.ChartRepository.
type chartMongo struct {
	coll *mongo.Collection
}

var _ usecase.ChartRepository = (*chartMongo)(nil)

// NewChartMongo creates a repository over the given collection.
func NewChartMongo(coll *mongo.Collection) *chartMongo {
	return &chartMongo{coll: coll}
}

// Insert stores rec under a freshly generated ObjectID.
func (r *chartMongo) Insert(ctx context.Context, rec entity.ChartRecord) (entity.ChartRecord, error) {
	doc := toDocument(rec)
	doc.ID = bson.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return entity.ChartRecord{}, err
	}
	return doc.toEntity()
}

// List returns records inside rg, newest trading date first. No limit is applied.
func (r *chartMongo) List(ctx context.Context, rg tradingdate.Range) ([]entity.ChartRecord, error) {
	cur, err := r.coll.Find(ctx, rangeFilter(rg), options.Find().SetSort(gallerySort))
	if err != nil {
		return nil, err
	}
	return collectCharts(ctx, cur)
}

// collectCharts drains cur. Documents that do not decode into the record schema
// are ErrMalformedRecord; cursor and network errors are returned as is.
func collectCharts(ctx context.Context, cur *mongo.Cursor) ([]entity.ChartRecord, error) {
	defer func() { _ = cur.Close(ctx) }()

	out := []entity.ChartRecord{}
	for cur.Next(ctx) {
		var doc chartDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}
		rec, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record with the given ObjectID hex.
// An id that is not a valid ObjectID cannot match anything and reports ErrNotFound.
func (r *chartMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the tradingDate index used by gallery queries.
func (r *chartMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    gallerySort,
		Options: options.Index().SetName("tradingDate_createdAt"),
	})
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.HasErrorCode(85) {
			// IndexOptionsConflict: an equivalent index exists under another name.
			return nil
		}
		return err
	}
	return nil
}
