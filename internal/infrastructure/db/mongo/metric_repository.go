package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

const metricsCollection = "metric_entries"

// MetricRepository implements ports.MetricRepository using MongoDB.
type MetricRepository struct {
	col *mongo.Collection
}

// NewMetricRepository creates a new MetricRepository.
func NewMetricRepository(db *mongo.Database) *MetricRepository {
	return &MetricRepository{col: db.Collection(metricsCollection)}
}

var _ ports.MetricRepository = (*MetricRepository)(nil)

type metricDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Kind       string    `bson:"kind"`
	Value      float64   `bson:"value"`
	RecordedAt time.Time `bson:"recorded_at"`
	CreatedAt  time.Time `bson:"created_at"`
}

type aggregateDoc struct {
	Count  int64   `bson:"count"`
	Sum    float64 `bson:"sum"`
	Avg    float64 `bson:"avg"`
	Latest float64 `bson:"latest"`
}

// Insert persists a metric entry. The entry ID is used as the document _id.
func (r *MetricRepository) Insert(ctx context.Context, e *domain.MetricEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := metricDoc{
		ID:         e.ID,
		UserID:     e.UserID,
		Kind:       string(e.Kind),
		Value:      e.Value,
		RecordedAt: e.RecordedAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// Aggregate folds the user's entries of kind recorded in [from, to) into one
// summary. Entries are sorted by recorded_at so $last yields the newest value.
func (r *MetricRepository) Aggregate(ctx context.Context, userID string, kind domain.MetricKind, from, to time.Time) (domain.MetricAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":     userID,
			"kind":        string(kind),
			"recorded_at": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "recorded_at", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"count":  bson.M{"$sum": 1},
			"sum":    bson.M{"$sum": "$value"},
			"avg":    bson.M{"$avg": "$value"},
			"latest": bson.M{"$last": "$value"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.MetricAggregate{}, fmt.Errorf("aggregate metrics: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return domain.MetricAggregate{}, fmt.Errorf("aggregate metrics: %w", err)
		}
		return domain.MetricAggregate{}, nil
	}

	var doc aggregateDoc
	if err := cursor.Decode(&doc); err != nil {
		return domain.MetricAggregate{}, fmt.Errorf("decode aggregate: %w", err)
	}
	return domain.MetricAggregate{
		Count:  doc.Count,
		Sum:    doc.Sum,
		Avg:    doc.Avg,
		Latest: doc.Latest,
	}, nil
}

// ListRecent returns up to limit entries of kind, newest first.
func (r *MetricRepository) ListRecent(ctx context.Context, userID string, kind domain.MetricKind, limit int) ([]domain.MetricEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID, "kind": string(kind)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []metricDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}

	entries := make([]domain.MetricEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, domain.MetricEntry{
			ID:         d.ID,
			UserID:     d.UserID,
			Kind:       domain.MetricKind(d.Kind),
			Value:      d.Value,
			RecordedAt: d.RecordedAt.UTC(),
		})
	}
	return entries, nil
}

// EnsureIndexes creates the window lookup index on metric_entries.
func (r *MetricRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "kind", Value: 1},
			{Key: "recorded_at", Value: -1},
		},
	})
	return err
}
