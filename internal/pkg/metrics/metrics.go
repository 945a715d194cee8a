// Package metrics provides Prometheus metrics recording for internal packages.
// This package exists to avoid import cycles between database, handler and middleware packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collections_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"},
	)

	dbQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collections_db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation"},
	)

	dbSlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collections_db_slow_queries_total",
			Help: "Total number of slow database queries (>100ms)",
		},
		[]string{"operation"},
	)

	serializationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collections_serializations_total",
			Help: "Total number of entity serializations by serializer and view",
		},
		[]string{"serializer", "view", "outcome"},
	)
)

// RecordDBQuery records database query metrics
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if duration > 100*time.Millisecond {
		dbSlowQueries.WithLabelValues(operation).Inc()
	}
}

// RecordDBError records a database query error
func RecordDBError(operation string) {
	dbQueryErrors.WithLabelValues(operation).Inc()
}

// RecordSerialization records one top-level serialize call
func RecordSerialization(serializer, view string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if view == "" {
		view = "keys"
	}
	serializationsTotal.WithLabelValues(serializer, view, outcome).Inc()
}
