// Package metrics defines the custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings; registration happens implicitly through promauto at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// UserLookupsTotal counts successful user info resolutions.
// Label:
//   - source: "cache" (served from the in-memory cache) or "delegate"
//     (resolved by the backing identity store)
var UserLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_lookups_total",
		Help:      "Total number of successful user info lookups, by source.",
	},
	[]string{"source"},
)

// UserLookupErrorsTotal counts failed user info resolutions.
// Label:
//   - reason: "not_found" or "unavailable"
var UserLookupErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_lookup_errors_total",
		Help:      "Total number of failed user info lookups, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts development login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of development login attempts, by result.",
	},
	[]string{"result"},
)

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)
