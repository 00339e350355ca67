package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

var (
	chainRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptopay",
		Subsystem: "chain_provider",
		Name:      "operations_total",
		Help:      "Count of chain provider lookups.",
	}, []string{"provider", "coin", "network", "operation", "status"})
	chainRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptopay",
		Subsystem: "chain_provider",
		Name:      "operation_duration_seconds",
		Help:      "Duration of chain provider lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider", "coin", "network", "operation", "status"})
)

// ChainProvider tracks metrics for on-chain transaction lookups.
type ChainProvider struct {
	provider string
	coin     model.Coin
	network  model.Network
}

// NewChainProvider constructs a metrics collector for one provider instance.
func NewChainProvider(provider string, coin model.Coin, network model.Network) *ChainProvider {
	if provider == "" {
		provider = "unknown"
	}
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &ChainProvider{provider: provider, coin: coin, network: network}
}

// Observe records a single lookup outcome and duration.
func (m ChainProvider) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	chainRequestsTotal.WithLabelValues(m.provider, string(m.coin), string(m.network), operation, status).Inc()
	chainRequestDuration.WithLabelValues(m.provider, string(m.coin), string(m.network), operation, status).Observe(time.Since(started).Seconds())
}
