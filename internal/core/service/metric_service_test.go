package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubMetricRepo struct {
	entries   []domain.MetricEntry
	insertErr error
	aggErr    error
}

func (r *stubMetricRepo) Insert(_ context.Context, e *domain.MetricEntry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, *e)
	return nil
}

// Aggregate mirrors the Mongo pipeline: filter, sort by time, fold.
func (r *stubMetricRepo) Aggregate(_ context.Context, userID string, kind domain.MetricKind, from, to time.Time) (domain.MetricAggregate, error) {
	if r.aggErr != nil {
		return domain.MetricAggregate{}, r.aggErr
	}
	var matched []domain.MetricEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.Kind == kind && !e.RecordedAt.Before(from) && e.RecordedAt.Before(to) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].RecordedAt.Before(matched[j].RecordedAt) })

	var agg domain.MetricAggregate
	for _, e := range matched {
		agg.Count++
		agg.Sum += e.Value
		agg.Latest = e.Value
	}
	if agg.Count > 0 {
		agg.Avg = agg.Sum / float64(agg.Count)
	}
	return agg, nil
}

func (r *stubMetricRepo) ListRecent(_ context.Context, userID string, kind domain.MetricKind, limit int) ([]domain.MetricEntry, error) {
	var out []domain.MetricEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.entries[i]
		if e.UserID == userID && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, userID, kind string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, userID, kind string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, userID+":"+kind)
	return nil
}

type stubInvalidator struct {
	invalidated []string
	err         error
}

func (c *stubInvalidator) Invalidate(_ context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	return c.err
}

func newMetricSvc(repo *stubMetricRepo, dedup *stubDedup, cache *stubInvalidator) ports.MetricService {
	return NewMetricService(repo, dedup, cache, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMetricService_Record_HappyPath(t *testing.T) {
	repo, dedup, cache := &stubMetricRepo{}, &stubDedup{}, &stubInvalidator{}
	svc := newMetricSvc(repo, dedup, cache)

	ts := time.Date(2026, 3, 2, 8, 30, 0, 500, time.UTC)
	res, err := svc.Record(context.Background(), ports.RecordMetricInput{
		UserID:     "u1",
		Role:       domain.RolePatient,
		Kind:       "steps",
		Value:      8500,
		RecordedAt: ts,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if res.Duplicate || res.Entry == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entry.ID == "" {
		t.Errorf("expected generated id")
	}
	if !res.Entry.RecordedAt.Equal(ts.Truncate(time.Second)) {
		t.Errorf("expected timestamp truncated to seconds, got %s", res.Entry.RecordedAt)
	}
	if len(repo.entries) != 1 {
		t.Errorf("expected entry persisted")
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "u1:steps" {
		t.Errorf("expected dedup key marked, got %v", dedup.marked)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Errorf("expected dashboard invalidated, got %v", cache.invalidated)
	}
}

func TestMetricService_Record_DefaultsTimestampToNow(t *testing.T) {
	repo := &stubMetricRepo{}
	svc := NewMetricService(repo, &stubDedup{}, &stubInvalidator{}, zerolog.Nop()).(*metricService)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Record(context.Background(), ports.RecordMetricInput{UserID: "u1", Role: domain.RolePatient, Kind: "weight", Value: 72})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Entry.RecordedAt.Equal(fixed) {
		t.Fatalf("expected %s, got %s", fixed, res.Entry.RecordedAt)
	}
}

func TestMetricService_Record_DuplicateSkipped(t *testing.T) {
	repo, cache := &stubMetricRepo{}, &stubInvalidator{}
	svc := newMetricSvc(repo, &stubDedup{dupResult: true}, cache)

	res, err := svc.Record(context.Background(), ports.RecordMetricInput{UserID: "u1", Role: domain.RolePatient, Kind: "steps", Value: 1})
	if err != nil {
		t.Fatalf("duplicate should not error, got: %v", err)
	}
	if !res.Duplicate {
		t.Fatalf("expected duplicate result")
	}
	if len(repo.entries) != 0 || len(cache.invalidated) != 0 {
		t.Fatalf("duplicate must not write anything")
	}
}

func TestMetricService_Record_DedupFailureStillRecords(t *testing.T) {
	repo := &stubMetricRepo{}
	svc := newMetricSvc(repo, &stubDedup{dupErr: errors.New("redis down"), markErr: errors.New("redis down")}, &stubInvalidator{})

	if _, err := svc.Record(context.Background(), ports.RecordMetricInput{UserID: "u1", Role: domain.RolePatient, Kind: "steps", Value: 1}); err != nil {
		t.Fatalf("expected record despite dedup failure, got %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected entry persisted")
	}
}

func TestMetricService_Record_Validation(t *testing.T) {
	svc := newMetricSvc(&stubMetricRepo{}, &stubDedup{}, &stubInvalidator{})

	cases := []struct {
		name string
		in   ports.RecordMetricInput
		want error
	}{
		{"unknown kind", ports.RecordMetricInput{Role: domain.RolePatient, Kind: "mood", Value: 1}, domain.ErrInvalidMetric},
		{"negative", ports.RecordMetricInput{Role: domain.RolePatient, Kind: "steps", Value: -1}, domain.ErrInvalidMetric},
		{"nan", ports.RecordMetricInput{Role: domain.RolePatient, Kind: "steps", Value: math.NaN()}, domain.ErrInvalidMetric},
		{"role not allowed", ports.RecordMetricInput{Role: domain.RoleFoodPartner, Kind: "steps", Value: 1}, domain.ErrMetricNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMetricService_Record_RepoError(t *testing.T) {
	boom := errors.New("insert failed")
	cache := &stubInvalidator{}
	svc := newMetricSvc(&stubMetricRepo{insertErr: boom}, &stubDedup{}, cache)

	_, err := svc.Record(context.Background(), ports.RecordMetricInput{UserID: "u1", Role: domain.RolePatient, Kind: "steps", Value: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("cache must not be invalidated on failure")
	}
}

func TestMetricService_ListRecent(t *testing.T) {
	repo := &stubMetricRepo{}
	for i := 0; i < 150; i++ {
		repo.entries = append(repo.entries, domain.MetricEntry{UserID: "u1", Kind: domain.MetricSteps, Value: float64(i)})
	}
	svc := newMetricSvc(repo, &stubDedup{}, &stubInvalidator{})

	got, err := svc.ListRecent(context.Background(), "u1", "steps", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != defaultListLimit || got[0].Value != 149 {
		t.Fatalf("expected %d newest entries, got %d (first %v)", defaultListLimit, len(got), got[0].Value)
	}

	got, _ = svc.ListRecent(context.Background(), "u1", "steps", 1000)
	if len(got) != maxListLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxListLimit, len(got))
	}

	if _, err := svc.ListRecent(context.Background(), "u1", "bogus", 5); !errors.Is(err, domain.ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}
}
