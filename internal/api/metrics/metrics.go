// Package metrics defines and registers all custom Prometheus metrics
// for the claims core service. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "claims"

// ClaimsCreatedTotal counts newly filed claims.
// Label:
//   - category: the claim category supplied by the claimant
var ClaimsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of claims created, by category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts successful claim status transitions.
// Label:
//   - to: the status the claim moved into (e.g. "verification")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of successful claim status transitions, by target status.",
	},
	[]string{"to"},
)

// AccessDeniedTotal counts guard denials on workflow operations.
// Label:
//   - route: the registered route template (e.g. "/v1/claims/:id/status")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of forbidden or unauthorized workflow calls, by route.",
	},
	[]string{"route"},
)

// RateLimitHitsTotal counts requests rejected by the rate limiter.
// Label:
//   - action: the rate-limited action name (e.g. "create_claim")
var RateLimitHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_hits_total",
		Help:      "Total number of requests rejected by the rate limiter, by action.",
	},
	[]string{"action"},
)

// SideEffectErrorsTotal counts best-effort side effects that failed.
// Label:
//   - kind: "audit", "notify", or "cache"
var SideEffectErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "side_effect_errors_total",
		Help:      "Total number of post-commit side effects that failed, by kind.",
	},
	[]string{"kind"},
)

// SideEffectQueueDepth tracks pending jobs per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SideEffectQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "side_effect_queue_depth",
		Help:      "Current number of side-effect jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
