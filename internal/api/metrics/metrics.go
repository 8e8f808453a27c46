// Package metrics defines and registers all custom Prometheus metrics for the
// account service. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "account"

// RegistrationsTotal counts account creation attempts.
// Label:
//   - result: "created", "duplicate_email", "invalid", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts credential checks on the token endpoint.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts tokens handed out on successful logins.
// Label:
//   - kind: "new" (freshly generated) or "reused" (existing mapping returned)
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens returned by issue-or-get, by kind.",
	},
	[]string{"kind"},
)

// TokenResolutionsTotal counts bearer token lookups on protected requests.
// Label:
//   - result: "cache_hit", "store_hit", or "miss"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of token resolutions, by result.",
	},
	[]string{"result"},
)

// LoginDuration measures the full login pipeline: user lookup, password
// verification, and token issuance.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of the credential verification and token issuance pipeline.",
		Buckets:   prometheus.DefBuckets,
	},
)
