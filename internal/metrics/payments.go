package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "payments_service",
		Name:      "operations_total",
		Help:      "Count of payment service operations.",
	}, []string{"operation", "status"})

	paymentsOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "payments_service",
		Name:      "operation_duration_seconds",
		Help:      "Duration of payment service operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})

	paymentsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "payments_service",
		Name:      "rejected_total",
		Help:      "Count of rejected payment submissions.",
	}, []string{"reason"})

	aggregatorStaleServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "payments_service",
		Name:      "stale_snapshot_served_total",
		Help:      "Count of metrics snapshots served from the last good cache after a store failure.",
	})
)

// Payments tracks metrics for submit/history/snapshot operations.
type Payments struct{}

// NewPayments creates a Payments metrics collector.
func NewPayments() *Payments {
	return &Payments{}
}

// Observe records duration and status of a service operation.
func (m Payments) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	paymentsOperationsTotal.WithLabelValues(operation, status).Inc()
	paymentsOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// ObserveRejected records a submission rejected before it reached the store.
func (m Payments) ObserveRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	paymentsRejectedTotal.WithLabelValues(reason).Inc()
}

// ObserveStaleServed records a snapshot answered from the cached copy.
func (m Payments) ObserveStaleServed() {
	aggregatorStaleServedTotal.Inc()
}
