package ports

import (
	"context"
	"time"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// RecordMetricInput is the DTO passed from the transport layer to MetricService.
type RecordMetricInput struct {
	UserID     string
	Role       domain.UserRole
	Kind       string
	Value      float64
	RecordedAt time.Time // zero means now
}

// RecordResult reports the outcome of a Record call.
type RecordResult struct {
	Entry     *domain.MetricEntry
	Duplicate bool
}

// MetricService validates and stores metric entries.
type MetricService interface {
	Record(ctx context.Context, in RecordMetricInput) (*RecordResult, error)
	ListRecent(ctx context.Context, userID, kind string, limit int) ([]domain.MetricEntry, error)
}

// DashboardInput selects whose dashboard to build and over which window.
type DashboardInput struct {
	UserID string
	Role   domain.UserRole
	Days   int // <= 0 uses the configured default
}

// DashboardResult is the computed set of stats for one dashboard.
type DashboardResult struct {
	Days  int
	Stats []domain.Stat
}

// DashboardService computes the stat cards shown on a user's dashboard.
type DashboardService interface {
	Stats(ctx context.Context, in DashboardInput) (*DashboardResult, error)
}
