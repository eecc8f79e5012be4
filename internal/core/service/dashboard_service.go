package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

const (
	defaultDashboardDays = 7
	maxDashboardDays     = 90
)

// DashboardCache stores computed dashboards per user and window.
// Version is bumped on every invalidation; Set must drop stats computed
// under an older version.
type DashboardCache interface {
	Get(ctx context.Context, userID string, days int) ([]domain.Stat, bool, error)
	Version(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, days int, version int64, stats []domain.Stat) error
}

type dashboardService struct {
	repo        ports.MetricRepository
	cache       DashboardCache
	defaultDays int
	now         func() time.Time
	log         zerolog.Logger
}

// NewDashboardService returns a DashboardService. defaultDays is used when a
// request does not name a window.
func NewDashboardService(repo ports.MetricRepository, cache DashboardCache, defaultDays int, log zerolog.Logger) ports.DashboardService {
	if defaultDays <= 0 || defaultDays > maxDashboardDays {
		defaultDays = defaultDashboardDays
	}
	return &dashboardService{
		repo:        repo,
		cache:       cache,
		defaultDays: defaultDays,
		now:         time.Now,
		log:         log,
	}
}

// Stats builds one stat per metric kind tracked by the user's role, comparing
// the current window with the one before it.
func (s *dashboardService) Stats(ctx context.Context, in ports.DashboardInput) (*ports.DashboardResult, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("dashboard: %w", domain.ErrInvalidRole)
	}
	days := s.clampDays(in.Days)

	if stats, ok, err := s.cache.Get(ctx, in.UserID, days); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dashboard cache read failed")
	} else if ok {
		return &ports.DashboardResult{Days: days, Stats: stats}, nil
	}

	// Read before aggregating so a write landing mid-computation makes Set a no-op.
	version, verErr := s.cache.Version(ctx, in.UserID)
	if verErr != nil {
		s.log.Warn().Err(verErr).Str("user_id", in.UserID).Msg("dashboard cache version read failed")
	}

	window := time.Duration(days) * 24 * time.Hour
	now := s.now().UTC()
	curFrom, prevFrom := now.Add(-window), now.Add(-2*window)

	kinds := domain.DashboardKinds(in.Role)
	stats := make([]domain.Stat, 0, len(kinds))
	for _, kind := range kinds {
		def, _ := domain.DefinitionFor(kind)

		cur, err := s.repo.Aggregate(ctx, in.UserID, kind, curFrom, now)
		if err != nil {
			return nil, fmt.Errorf("dashboard: aggregate %s: %w", kind, err)
		}
		prev, err := s.repo.Aggregate(ctx, in.UserID, kind, prevFrom, curFrom)
		if err != nil {
			return nil, fmt.Errorf("dashboard: aggregate previous %s: %w", kind, err)
		}
		stats = append(stats, buildStat(def, days, cur, prev))
	}

	if verErr == nil {
		if err := s.cache.Set(ctx, in.UserID, days, version, stats); err != nil {
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dashboard cache write failed")
		}
	}
	return &ports.DashboardResult{Days: days, Stats: stats}, nil
}

func (s *dashboardService) clampDays(days int) int {
	switch {
	case days <= 0:
		return s.defaultDays
	case days > maxDashboardDays:
		return maxDashboardDays
	}
	return days
}

func buildStat(def domain.MetricDefinition, days int, cur, prev domain.MetricAggregate) domain.Stat {
	stat := domain.Stat{
		Kind:  def.Kind,
		Title: def.Title,
		Icon:  def.Icon,
	}

	figure := roundFigure(cur.Figure(def.Aggregation), def.Aggregation)
	if def.Unit == "" {
		stat.Value = domain.NumberValue(figure)
	} else {
		stat.Value = domain.StringValue(domain.FormatNumber(figure) + " " + def.Unit)
	}

	subtitle := windowLabel(days)
	if cur.Count == 0 {
		subtitle = "No entries yet"
	}
	stat.Subtitle = &subtitle

	if cur.Count > 0 && prev.Count > 0 {
		stat.Trend = percentChange(cur.Figure(def.Aggregation), prev.Figure(def.Aggregation))
	}
	return stat
}

// percentChange returns nil when the previous figure is zero.
func percentChange(cur, prev float64) *domain.Trend {
	if prev == 0 {
		return nil
	}
	change := math.Round((cur - prev) / math.Abs(prev) * 100)
	return &domain.Trend{Value: math.Abs(change), IsPositive: change >= 0}
}

func roundFigure(v float64, agg domain.Aggregation) float64 {
	if agg == domain.AggregateAvg {
		return math.Round(v*10) / 10
	}
	return v
}

func windowLabel(days int) string {
	if days == 1 {
		return "Last 24 hours"
	}
	return fmt.Sprintf("Last %d days", days)
}
