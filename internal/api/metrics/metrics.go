// Package metrics defines all custom Prometheus metrics for the ledger
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// RegistrationsTotal counts successfully created users.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users successfully registered.",
	},
)

// LoginsTotal counts successful logins (one new session token each).
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "bad_credentials", "bad_header", "unknown_token",
//     "orphaned_token" or "throttled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// TransactionsTotal counts successfully applied ledger transactions.
// Label:
//   - type: "deposit" or "withdraw"
var TransactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_total",
		Help:      "Total number of ledger transactions applied, by type.",
	},
	[]string{"type"},
)

// TransactionsRejectedTotal counts transactions rejected before any state
// change.
// Label:
//   - reason: short description of the rejection (e.g. "insufficient_funds")
var TransactionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_rejected_total",
		Help:      "Total number of ledger transactions rejected, by reason.",
	},
	[]string{"reason"},
)

// SnapshotSaveDuration measures how long a full snapshot write takes.
// Label:
//   - backend: "file" or "mongo"
var SnapshotSaveDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_save_duration_seconds",
		Help:      "Duration of full snapshot persistence, by backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)
