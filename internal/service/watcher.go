package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/clock"
	"github.com/bullmoney/cryptopay-backend/internal/crypt"
	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/notify"
	"github.com/bullmoney/cryptopay-backend/internal/store"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
	"github.com/bullmoney/cryptopay-backend/pkg/workerpool"
)

// WatcherConfig holds the knobs of the confirmation loop.
type WatcherConfig struct {
	PollInterval     time.Duration
	CheckTimeout     time.Duration
	CycleBudget      time.Duration
	WorkerCount      int
	BatchLimit       int
	ExpiryWindow     time.Duration
	MaxCheckAttempts uint32
	UnderpayRatio    decimal.Decimal
}

// DefaultWatcherConfig returns the production defaults.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		PollInterval:     30 * time.Second,
		CheckTimeout:     10 * time.Second,
		CycleBudget:      5 * time.Minute,
		WorkerCount:      8,
		BatchLimit:       50,
		ExpiryWindow:     2 * time.Hour,
		MaxCheckAttempts: 5,
		UnderpayRatio:    decimal.RequireFromString("0.97"),
	}
}

// ConfirmationWatcher polls open payments and drives them through the status
// graph based on what the chain providers report.
type ConfirmationWatcher struct {
	store     PaymentStore
	providers ProviderRegistry
	wallets   *wallet.Registry
	cipher    *crypt.Cipher
	notifier  Notifier
	metrics   WatcherMetrics
	logger    *zap.Logger
	cfg       WatcherConfig
	sleep     func(context.Context, time.Duration) error

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewConfirmationWatcher(
	store PaymentStore,
	providers ProviderRegistry,
	wallets *wallet.Registry,
	cipher *crypt.Cipher,
	notifier Notifier,
	metrics WatcherMetrics,
	logger *zap.Logger,
	cfg WatcherConfig,
) (*ConfirmationWatcher, error) {
	if metrics == nil {
		return nil, errors.New("watcher metrics is required")
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if cfg.WorkerCount <= 0 || cfg.BatchLimit <= 0 {
		cfg = DefaultWatcherConfig()
	}
	return &ConfirmationWatcher{
		store:     store,
		providers: providers,
		wallets:   wallets,
		cipher:    cipher,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		sleep:     clock.SleepWithContext,
		inFlight:  make(map[string]struct{}),
	}, nil
}

// Run executes verification cycles until the context is canceled.
func (s *ConfirmationWatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("cycle failed, backing off",
				zap.Error(err), zap.Duration("sleep", s.cfg.PollInterval))
		}
		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return err
		}
	}
}

// run performs one cycle: fetch the oldest open payments and check each one.
// Per-record failures never abort the cycle; only store fetch errors and
// cancellation do.
func (s *ConfirmationWatcher) run(ctx context.Context) (err error) {
	started := time.Now()
	records := 0
	defer func() {
		s.metrics.ObserveCycle(err, records, started)
	}()

	cycleCtx, cancel := context.WithTimeout(ctx, s.cfg.CycleBudget)
	defer cancel()

	payments, err := s.store.PaymentsByStatus(cycleCtx,
		[]model.PaymentStatus{model.StatusPending, model.StatusConfirming},
		s.cfg.BatchLimit,
	)
	if err != nil {
		s.logger.Error("fetch open payments failed", zap.Error(err))
		return err
	}
	records = len(payments)
	if records == 0 {
		return nil
	}

	s.logger.Debug("starting verification cycle", zap.Int("records", records))

	return workerpool.Process(cycleCtx, s.cfg.WorkerCount, payments,
		func(ctx context.Context, p model.Payment) error {
			s.checkOne(ctx, p)
			return ctx.Err()
		}, nil)
}

// checkOne verifies a single record. It never returns: every failure is
// recorded on the payment or logged, so one sick record cannot take the
// cycle down with it.
func (s *ConfirmationWatcher) checkOne(ctx context.Context, p model.Payment) {
	if !s.acquire(p.OrderNumber) {
		return
	}
	defer s.release(p.OrderNumber)

	started := time.Now()
	var err error
	defer func() {
		s.metrics.ObserveCheck(p.Coin, err, started)
	}()

	logger := s.logger.With(
		zap.String("order_number", p.OrderNumber),
		zap.String("coin", string(p.Coin)),
		zap.String("status", string(p.Status)),
	)

	w, err := s.wallets.Find(p.Coin, p.Network)
	if err != nil {
		logger.Error("record references unsupported wallet", zap.Error(err))
		s.apply(ctx, p, outcome{
			status:        model.StatusManualReview,
			confirmations: p.Confirmations,
			actualAmount:  p.ActualAmountCrypto,
			checkAttempts: p.CheckAttempts,
			lastError:     err.Error(),
			reason:        "no wallet configured for this coin and network",
		}, logger)
		return
	}

	provider, err := s.providers.Provider(p.Coin, p.Network)
	if err != nil {
		logger.Error("no chain provider for record", zap.Error(err))
		s.apply(ctx, p, outcome{
			status:        model.StatusManualReview,
			confirmations: p.Confirmations,
			actualAmount:  p.ActualAmountCrypto,
			checkAttempts: p.CheckAttempts,
			lastError:     err.Error(),
			reason:        "no chain provider configured",
		}, logger)
		return
	}

	txHash, err := s.txHash(p)
	if err != nil {
		logger.Error("cannot recover tx hash", zap.Error(err))
		s.apply(ctx, p, outcome{
			status:        model.StatusManualReview,
			confirmations: p.Confirmations,
			actualAmount:  p.ActualAmountCrypto,
			checkAttempts: p.CheckAttempts,
			lastError:     err.Error(),
			reason:        "stored transaction hash is unreadable",
		}, logger)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	tx, lookupErr := provider.TransactionStatus(checkCtx, txHash, w)
	if lookupErr != nil {
		logger.Debug("provider lookup failed", zap.Error(lookupErr))
	}
	err = lookupErr

	out := decide(p, tx, lookupErr, time.Now().UTC(), s.cfg)
	s.apply(ctx, p, out, logger)
}

// apply writes the outcome back with an optimistic status check and emits the
// notification when the record moved somewhere notable.
func (s *ConfirmationWatcher) apply(ctx context.Context, p model.Payment, out outcome, logger *zap.Logger) {
	now := time.Now().UTC()

	updated, err := s.store.UpdatePayment(ctx, p.OrderNumber, p.Status, func(rec *model.Payment) {
		rec.Status = out.status
		rec.Confirmations = out.confirmations
		rec.ActualAmountCrypto = out.actualAmount
		rec.CheckAttempts = out.checkAttempts
		rec.LastError = out.lastError
		rec.LastCheckedAt = &now
		if out.status == model.StatusConfirmed && rec.ConfirmedAt == nil {
			rec.ConfirmedAt = &now
		}
	})
	switch {
	case errors.Is(err, store.ErrStaleUpdate):
		logger.Debug("record changed under us; skipping write")
		return
	case err != nil:
		logger.Error("update payment failed", zap.Error(err))
		return
	}

	if !out.transitioned(p.Status) {
		return
	}

	s.metrics.ObserveTransition(p.Coin, p.Status, out.status)
	logger.Info("payment transitioned",
		zap.String("to", string(out.status)),
		zap.Uint32("confirmations", updated.Confirmations),
		zap.String("reason", out.reason),
	)

	if !notable(out.status) {
		return
	}
	event := notify.Event{
		OrderNumber: p.OrderNumber,
		Coin:        p.Coin,
		Network:     p.Network,
		AmountUSD:   p.AmountUSD,
		From:        p.Status,
		To:          out.status,
		Reason:      out.reason,
		OccurredAt:  now,
	}
	if err := s.notifier.PaymentStatusChanged(ctx, event); err != nil {
		logger.Warn("notification delivery failed", zap.Error(err))
	}
}

// notable lists the statuses the outside world cares about.
func notable(status model.PaymentStatus) bool {
	switch status {
	case model.StatusConfirmed, model.StatusFailed, model.StatusExpired,
		model.StatusUnderpaid, model.StatusManualReview:
		return true
	}
	return false
}

func (s *ConfirmationWatcher) txHash(p model.Payment) (string, error) {
	return s.cipher.Decrypt(p.TxHashEncrypted)
}

func (s *ConfirmationWatcher) acquire(orderNumber string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[orderNumber]; ok {
		return false
	}
	s.inFlight[orderNumber] = struct{}{}
	return true
}

func (s *ConfirmationWatcher) release(orderNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, orderNumber)
}
