package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidMetric    = errors.New("invalid metric")
	ErrMetricNotAllowed = errors.New("metric not allowed for role")
)

// MetricKind identifies a tracked measurement.
type MetricKind string

const (
	MetricSteps          MetricKind = "steps"
	MetricWeight         MetricKind = "weight"
	MetricSleepHours     MetricKind = "sleep_hours"
	MetricHeartRate      MetricKind = "heart_rate"
	MetricWaterML        MetricKind = "water_ml"
	MetricCalories       MetricKind = "calories"
	MetricMindfulMinutes MetricKind = "mindful_minutes"
	MetricSessions       MetricKind = "sessions"
	MetricMealsServed    MetricKind = "meals_served"
)

// Aggregation says how entries in a window collapse into one figure.
type Aggregation string

const (
	AggregateSum    Aggregation = "sum"
	AggregateAvg    Aggregation = "avg"
	AggregateLatest Aggregation = "latest"
)

// MetricDefinition describes how a kind is displayed and aggregated.
type MetricDefinition struct {
	Kind        MetricKind
	Title       string
	Unit        string
	Icon        string
	Aggregation Aggregation
}

var definitions = map[MetricKind]MetricDefinition{
	MetricSteps:          {Kind: MetricSteps, Title: "Steps", Icon: "footprints", Aggregation: AggregateSum},
	MetricWeight:         {Kind: MetricWeight, Title: "Weight", Unit: "kg", Icon: "scale", Aggregation: AggregateLatest},
	MetricSleepHours:     {Kind: MetricSleepHours, Title: "Sleep", Unit: "h", Icon: "moon", Aggregation: AggregateAvg},
	MetricHeartRate:      {Kind: MetricHeartRate, Title: "Resting Heart Rate", Unit: "bpm", Icon: "heart", Aggregation: AggregateAvg},
	MetricWaterML:        {Kind: MetricWaterML, Title: "Water", Unit: "ml", Icon: "droplet", Aggregation: AggregateSum},
	MetricCalories:       {Kind: MetricCalories, Title: "Calories", Unit: "kcal", Icon: "flame", Aggregation: AggregateSum},
	MetricMindfulMinutes: {Kind: MetricMindfulMinutes, Title: "Mindful Minutes", Unit: "min", Icon: "lotus", Aggregation: AggregateSum},
	MetricSessions:       {Kind: MetricSessions, Title: "Sessions", Icon: "calendar", Aggregation: AggregateSum},
	MetricMealsServed:    {Kind: MetricMealsServed, Title: "Meals Served", Icon: "utensils", Aggregation: AggregateSum},
}

// ParseMetricKind accepts only the enumerated kinds.
func ParseMetricKind(s string) (MetricKind, error) {
	k := MetricKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidMetric, s)
	}
	return k, nil
}

func (k MetricKind) Valid() bool {
	_, ok := definitions[k]
	return ok
}

// DefinitionFor returns the display definition of k.
func DefinitionFor(k MetricKind) (MetricDefinition, bool) {
	d, ok := definitions[k]
	return d, ok
}

// DashboardKinds lists the metric kinds a role tracks, in card order.
func DashboardKinds(r UserRole) []MetricKind {
	switch r {
	case RolePatient:
		return []MetricKind{MetricSteps, MetricWeight, MetricSleepHours, MetricHeartRate, MetricWaterML, MetricCalories, MetricMindfulMinutes}
	case RoleDoctor:
		return []MetricKind{MetricSessions}
	case RoleNutritionist:
		return []MetricKind{MetricSessions, MetricCalories}
	case RoleYoga:
		return []MetricKind{MetricSessions, MetricMindfulMinutes}
	case RoleTherapist:
		return []MetricKind{MetricSessions, MetricSleepHours}
	case RoleFoodPartner:
		return []MetricKind{MetricMealsServed}
	}
	return nil
}

// CanRecord reports whether users with role r may record kind k.
func (r UserRole) CanRecord(k MetricKind) bool {
	for _, allowed := range DashboardKinds(r) {
		if allowed == k {
			return true
		}
	}
	return false
}

// ValidateMetricValue accepts finite, non-negative values.
func ValidateMetricValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: value must be a non-negative number", ErrInvalidMetric)
	}
	return nil
}

// MetricEntry is a single recorded measurement.
type MetricEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Kind       MetricKind `json:"kind"`
	Value      float64    `json:"value"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// MetricAggregate summarises the entries of one kind inside a window.
type MetricAggregate struct {
	Count  int64
	Sum    float64
	Avg    float64
	Latest float64
}

// Figure picks the value matching agg.
func (a MetricAggregate) Figure(agg Aggregation) float64 {
	switch agg {
	case AggregateAvg:
		return a.Avg
	case AggregateLatest:
		return a.Latest
	default:
		return a.Sum
	}
}
