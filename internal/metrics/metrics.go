// Package metrics holds the process-wide prometheus collectors. They are
// registered on the default registry and served by promhttp on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "amendments"

var (
	capabilityDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "capability",
		Name:      "decisions_total",
		Help:      "Capability checks broken down by role, action and result.",
	}, []string{"role", "action", "result"})

	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "operations_total",
		Help:      "Amendment operations broken down by operation and outcome kind.",
	}, []string{"operation", "outcome"})

	operationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "operation_latency_seconds",
		Help:      "Latency of amendment operations, including the database round trips.",
		Buckets: []float64{
			0.001, 0.002, 0.005, 0.01,
			0.02, 0.05, 0.1, 0.2,
			0.5, 1, 2,
		},
	}, []string{"operation"})

	backlog = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "backlog",
		Name:      "open",
		Help:      "Amendments waiting in a non-terminal status, as of the last backlog run.",
	}, []string{"status", "age"})
)

// RecordCapabilityDecision counts one capability table lookup.
func RecordCapabilityDecision(role, action string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	capabilityDecisions.With(prometheus.Labels{
		"role":   role,
		"action": action,
		"result": result,
	}).Inc()
}

// RecordOperation counts an operation outcome. outcome is "ok" or an error kind.
func RecordOperation(operation, outcome string, latency time.Duration) {
	operations.WithLabelValues(operation, outcome).Inc()
	operationLatency.WithLabelValues(operation).Observe(latency.Seconds())
}

// SetBacklog publishes the open and stale counts for one status.
func SetBacklog(status string, open, stale int64) {
	backlog.WithLabelValues(status, "any").Set(float64(open))
	backlog.WithLabelValues(status, "stale").Set(float64(stale))
}
