// Package metrics defines and registers all custom Prometheus metrics for the
// gym API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto, so the /metrics endpoint exposes them as soon as the package is
// linked in.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gym"

// ── Roster metrics ────────────────────────────────────────────────────────────

// RosterMutationsTotal counts create/update/delete calls against the member directory.
// Labels:
//   - op: "add", "edit" or "remove"
//   - result: "ok" or "error"
var RosterMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_mutations_total",
		Help:      "Total number of member directory mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// RosterLoadDuration measures a full member directory fetch.
var RosterLoadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "roster_load_duration_seconds",
		Help:      "Duration of a full member directory fetch.",
		Buckets:   prometheus.DefBuckets,
	},
)

// IdempotentReplaysTotal counts member creations answered from a stored idempotency key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of member creations answered from a stored idempotency key.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsProcessedTotal counts notifications delivered by the dispatcher.
// Labels:
//   - kind: notification kind (e.g. "socio_welcome")
//   - result: "ok" or "error"
var NotificationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_processed_total",
		Help:      "Total number of notifications handled by the dispatcher.",
	},
	[]string{"kind", "result"},
)

// NotificationsQueueDepth tracks pending notifications per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsDroppedTotal counts notifications rejected because the dispatcher was stopped.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped after the dispatcher stopped.",
	},
)

// ── Auth & media metrics ──────────────────────────────────────────────────────

// LoginAttemptsTotal counts staff login attempts.
// Label:
//   - result: "ok" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of staff login attempts, by result.",
	},
	[]string{"result"},
)

// PhotoUploadsTotal counts profile photo uploads to the media host.
// Label:
//   - result: "ok" or "error"
var PhotoUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_uploads_total",
		Help:      "Total number of profile photo uploads, by result.",
	},
	[]string{"result"},
)
