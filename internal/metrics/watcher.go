package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

var (
	watcherCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "confirmation_watcher",
		Name:      "cycle_total",
		Help:      "Count of verification cycles.",
	}, []string{"status"})

	watcherCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "confirmation_watcher",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a verification cycle.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"status"})

	watcherCycleBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "confirmation_watcher",
		Name:      "cycle_batch_size",
		Help:      "Number of payments checked per cycle.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 7), // 1..64
	}, []string{})

	watcherCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "confirmation_watcher",
		Name:      "check_duration_seconds",
		Help:      "Duration of a single payment check.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "status"})

	watcherTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "confirmation_watcher",
		Name:      "transitions_total",
		Help:      "Count of payment status transitions applied.",
	}, []string{"coin", "from", "to"})
)

// Watcher tracks metrics for the confirmation watcher loop.
type Watcher struct{}

// NewWatcher creates a Watcher metrics collector.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// ObserveCycle records one poll cycle with the number of records it picked up.
func (m Watcher) ObserveCycle(err error, records int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	watcherCycleTotal.WithLabelValues(status).Inc()
	watcherCycleDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	watcherCycleBatchSize.WithLabelValues().Observe(float64(records))
}

// ObserveCheck records one per-payment check.
func (m Watcher) ObserveCheck(coin model.Coin, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if coin == "" {
		coin = "unknown"
	}

	watcherCheckDuration.WithLabelValues(string(coin), status).Observe(time.Since(started).Seconds())
}

// ObserveTransition records an applied status transition.
func (m Watcher) ObserveTransition(coin model.Coin, from, to model.PaymentStatus) {
	if coin == "" {
		coin = "unknown"
	}
	watcherTransitionsTotal.WithLabelValues(string(coin), string(from), string(to)).Inc()
}
