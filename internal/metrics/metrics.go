// Package metrics defines and registers the custom Prometheus metrics of the
// menu administration API. It is the single source of truth for metric names,
// labels and help strings. All metrics register with the default registry on
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menu"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad email, password or inactive account) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Restaurant metrics ────────────────────────────────────────────────────────

// RestaurantsCreatedTotal counts restaurants successfully persisted.
var RestaurantsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restaurants_created_total",
		Help:      "Total number of restaurants created.",
	},
)

// SlugCollisionsTotal counts slug candidates that were already taken, either
// found by a probe or lost to a concurrent insert.
// Label:
//   - stage: "probe" or "insert"
var SlugCollisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slug_collisions_total",
		Help:      "Total number of slug candidates rejected because they were already in use.",
	},
	[]string{"stage"},
)

// ── Image metrics ─────────────────────────────────────────────────────────────

// ImageUploadsTotal counts image uploads.
// Label:
//   - result: "success" or "error"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image uploads, by result.",
	},
	[]string{"result"},
)

// ImageDeletionsTotal counts best-effort remote image deletions.
// Label:
//   - result: "success", "failed" or "dropped" (cleanup queue full)
var ImageDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_deletions_total",
		Help:      "Total number of image deletions, by result.",
	},
	[]string{"result"},
)

// ImageCleanupQueueDepth tracks deletions waiting for a cleanup worker.
var ImageCleanupQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "image_cleanup_queue_depth",
		Help:      "Current number of image deletions pending in the cleanup queue.",
	},
)
