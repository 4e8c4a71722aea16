// Package metrics defines and registers all custom Prometheus metrics for the
// experience recommendation API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Collectors are registered with the default registry through promauto on
// package initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recommender"

// ── Recommendation metrics ────────────────────────────────────────────────────

// RecommendationsTotal counts recommendation requests by outcome.
// Label:
//   - result: "success", "cache_hit", "not_found", "upstream_error", "error"
var RecommendationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total number of recommendation requests, by outcome.",
	},
	[]string{"result"},
)

// UpstreamRequestDuration measures a single provider call, retries excluded.
// Labels:
//   - provider: "openai" or "anthropic"
//   - outcome: "success" or "error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of completion provider calls.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
	},
	[]string{"provider", "outcome"},
)

// UpstreamErrorsTotal counts failed provider calls.
// Labels:
//   - provider: "openai" or "anthropic"
//   - reason: "transport", "status", "decode", "empty", "circuit_open"
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total number of failed completion provider calls, by reason.",
	},
	[]string{"provider", "reason"},
)

// CacheLookupsTotal counts recommendation cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of recommendation cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// CircuitBreakerState is the provider circuit state: 0 closed, 1 half-open, 2 open.
var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	},
	[]string{"name"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogReloadsTotal counts catalog loads.
// Labels:
//   - source: "file" or "mongo"
//   - result: "success" or "error"
var CatalogReloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_reloads_total",
		Help:      "Total number of catalog loads, by source and result.",
	},
	[]string{"source", "result"},
)

// CatalogRecords is the number of records in the live snapshot.
// Label:
//   - kind: "members" or "experiences"
var CatalogRecords = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_records",
		Help:      "Number of records in the current catalog snapshot.",
	},
	[]string{"kind"},
)
