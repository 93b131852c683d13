// Package metrics defines and registers all custom Prometheus metrics for the
// menumesa POS API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// load; request-level HTTP metrics come from the echoprometheus middleware
// wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRegistrationsTotal counts successfully created accounts via /auth/register.
var AuthRegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthTokenRefreshesTotal counts access-token refresh attempts.
// Label:
//   - result: "success" or "failure"
var AuthTokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_token_refreshes_total",
		Help:      "Total number of access-token refresh attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRateLimitedTotal counts requests rejected by the auth rate limiter.
var AuthRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rate_limited_total",
		Help:      "Total number of requests rejected with 429 on auth routes.",
	},
)
