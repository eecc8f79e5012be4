package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wellnest/wellness-api/internal/api/metrics"
	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID, kind string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID, kind string, ts time.Time) error
}

// DashboardInvalidator drops cached dashboards after a write.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type metricService struct {
	repo  ports.MetricRepository
	dedup DedupChecker
	cache DashboardInvalidator
	now   func() time.Time
	log   zerolog.Logger
}

// NewMetricService returns a MetricService implementation.
func NewMetricService(
	repo ports.MetricRepository,
	dedup DedupChecker,
	cache DashboardInvalidator,
	log zerolog.Logger,
) ports.MetricService {
	return &metricService{
		repo:  repo,
		dedup: dedup,
		cache: cache,
		now:   time.Now,
		log:   log,
	}
}

// Record validates, deduplicates, and persists a single metric entry.
func (s *metricService) Record(ctx context.Context, in ports.RecordMetricInput) (*ports.RecordResult, error) {
	kind, err := domain.ParseMetricKind(in.Kind)
	if err != nil {
		metrics.MetricsRejectedTotal.WithLabelValues("invalid_kind").Inc()
		return nil, err
	}
	if err := domain.ValidateMetricValue(in.Value); err != nil {
		metrics.MetricsRejectedTotal.WithLabelValues("invalid_value").Inc()
		return nil, err
	}
	if !in.Role.CanRecord(kind) {
		metrics.MetricsRejectedTotal.WithLabelValues("not_allowed").Inc()
		return nil, fmt.Errorf("%w: %s cannot record %s", domain.ErrMetricNotAllowed, in.Role, kind)
	}

	recordedAt := in.RecordedAt.UTC()
	if in.RecordedAt.IsZero() {
		recordedAt = s.now().UTC()
	}
	recordedAt = recordedAt.Truncate(time.Second)

	isDup, err := s.dedup.IsDuplicate(ctx, in.UserID, string(kind), recordedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.MetricsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("user_id", in.UserID).Str("kind", string(kind)).Msg("duplicate metric skipped")
		return &ports.RecordResult{Duplicate: true}, nil
	}
	metrics.MetricsDedupTotal.WithLabelValues("miss").Inc()

	entry := &domain.MetricEntry{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Kind:       kind,
		Value:      in.Value,
		RecordedAt: recordedAt,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("record metric: %w", err)
	}

	if err := s.dedup.Mark(ctx, in.UserID, string(kind), recordedAt); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to set dedup key")
	}
	if err := s.cache.Invalidate(ctx, in.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to invalidate dashboard cache")
	}

	metrics.MetricsRecordedTotal.WithLabelValues(string(kind)).Inc()
	s.log.Info().
		Str("user_id", in.UserID).
		Str("kind", string(kind)).
		Float64("value", in.Value).
		Msg("metric recorded")

	return &ports.RecordResult{Entry: entry}, nil
}

// ListRecent returns the user's latest entries of one kind.
func (s *metricService) ListRecent(ctx context.Context, userID, kind string, limit int) ([]domain.MetricEntry, error) {
	k, err := domain.ParseMetricKind(kind)
	if err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	entries, err := s.repo.ListRecent(ctx, userID, k, limit)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return entries, nil
}
