package ports

import (
	"context"
	"time"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// MetricRepository persists metric entries and aggregates them per window.
type MetricRepository interface {
	Insert(ctx context.Context, entry *domain.MetricEntry) error

	// Aggregate summarises the user's entries of kind recorded in [from, to).
	Aggregate(ctx context.Context, userID string, kind domain.MetricKind, from, to time.Time) (domain.MetricAggregate, error)

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, userID string, kind domain.MetricKind, limit int) ([]domain.MetricEntry, error)
}
