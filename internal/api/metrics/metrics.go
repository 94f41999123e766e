// Package metrics defines and registers the custom Prometheus metrics for
// the placemat auth service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "placemat"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "account_disabled",
//     "rate_limited", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications by outcome.
// Label:
//   - result: "success", "invalid", or "expired"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_token_verifications_total",
		Help:      "Total number of bearer token verifications, by outcome.",
	},
	[]string{"result"},
)

// LoginDuration measures end-to-end login handling, dominated by the bcrypt
// comparison, so the buckets skew higher than the Prometheus defaults.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_login_duration_seconds",
		Help:      "Duration of login processing including password verification.",
		Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5},
	},
)
