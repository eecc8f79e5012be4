// Package metrics defines and registers all custom Prometheus metrics for the
// wellness API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wellness"

// ── Metric ingestion ─────────────────────────────────────────────────────────

// MetricsRecordedTotal counts entries that were persisted.
// Label:
//   - kind: the metric kind (e.g. "steps", "weight")
var MetricsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metrics_recorded_total",
		Help:      "Total number of metric entries recorded, by kind.",
	},
	[]string{"kind"},
)

// MetricsRejectedTotal counts entries refused before persistence.
// Label:
//   - reason: "invalid_kind", "invalid_value" or "not_allowed"
var MetricsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metrics_rejected_total",
		Help:      "Total number of metric entries rejected by validation.",
	},
	[]string{"reason"},
)

// MetricsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new entry, recorded)
var MetricsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metrics_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// IngestQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var IngestQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Current number of metric entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Dashboard ────────────────────────────────────────────────────────────────

// DashboardCacheTotal counts dashboard cache lookups.
// Label:
//   - result: "hit", "miss", or "stale" when a write is dropped after an invalidation
var DashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_cache_total",
		Help:      "Total number of dashboard cache lookups, by result.",
	},
	[]string{"result"},
)

// StatCardsRenderedTotal counts cards served to clients.
// Label:
//   - tone: "positive", "negative", or "none" when the card has no trend
var StatCardsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stat_cards_rendered_total",
		Help:      "Total number of stat cards rendered, by trend tone.",
	},
	[]string{"tone"},
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// RegistrationsTotal counts new accounts.
// Label:
//   - role: one of the six user roles
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
