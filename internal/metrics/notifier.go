package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notifierDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "notifier",
		Name:      "deliveries_total",
		Help:      "Count of status change notification deliveries.",
	}, []string{"status"})

	notifierDeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "notifier",
		Name:      "delivery_duration_seconds",
		Help:      "Duration of notification deliveries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Notifier tracks metrics for webhook deliveries.
type Notifier struct{}

// NewNotifier creates a Notifier metrics collector.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Observe records one delivery attempt.
func (m Notifier) Observe(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	notifierDeliveriesTotal.WithLabelValues(status).Inc()
	notifierDeliveryDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
