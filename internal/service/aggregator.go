package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Snapshot is the public rollup of payment totals, bucketed by outcome.
type Snapshot struct {
	ConfirmedUSD   decimal.Decimal `json:"confirmedUsd"`
	PendingUSD     decimal.Decimal `json:"pendingUsd"`
	FailedUSD      decimal.Decimal `json:"failedUsd"`
	ConfirmedCount uint64          `json:"confirmedCount"`
	PendingCount   uint64          `json:"pendingCount"`
	FailedCount    uint64          `json:"failedCount"`
	TotalCount     uint64          `json:"totalCount"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// Aggregator serves payment totals and falls back to the last good snapshot
// when the store is unavailable.
type Aggregator struct {
	store   PaymentStore
	metrics PaymentsMetrics
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.RWMutex
	last *Snapshot
}

func NewAggregator(store PaymentStore, metrics PaymentsMetrics, logger *zap.Logger) (*Aggregator, error) {
	if metrics == nil {
		return nil, errors.New("payments metrics is required")
	}
	return &Aggregator{
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Snapshot returns fresh totals, or the cached ones when the store errors and
// a previous read succeeded. With no cache to fall back on the error is
// returned as is.
func (a *Aggregator) Snapshot(ctx context.Context) (snap Snapshot, err error) {
	started := time.Now()
	defer func() {
		a.metrics.Observe("metrics_snapshot", err, started)
	}()

	totals, err := a.store.StatusTotals(ctx)
	if err != nil {
		a.mu.RLock()
		cached := a.last
		a.mu.RUnlock()
		if cached == nil {
			return Snapshot{}, fmt.Errorf("status totals: %w", err)
		}
		a.logger.Warn("serving cached totals, store unavailable",
			zap.Error(err), zap.Time("cached_at", cached.LastUpdated))
		a.metrics.ObserveStaleServed()
		return *cached, nil
	}

	snap = Snapshot{
		ConfirmedUSD:   totals.ConfirmedUSD,
		PendingUSD:     totals.PendingUSD,
		FailedUSD:      totals.FailedUSD,
		ConfirmedCount: totals.ConfirmedCount,
		PendingCount:   totals.PendingCount,
		FailedCount:    totals.FailedCount,
		TotalCount:     totals.TotalCount,
		LastUpdated:    a.now().UTC(),
	}

	a.mu.Lock()
	a.last = &snap
	a.mu.Unlock()
	return snap, nil
}
