package service

import (
	"context"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/notify"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PaymentStore interface {
		InsertPayment(ctx context.Context, p model.Payment) error
		PaymentByOrder(ctx context.Context, orderNumber string) (model.Payment, error)
		PaymentsByStatus(ctx context.Context, statuses []model.PaymentStatus, limit int) ([]model.Payment, error)
		PaymentsByEmailDigest(ctx context.Context, digest string, limit int) ([]model.Payment, error)
		UpdatePayment(ctx context.Context, orderNumber string, expected model.PaymentStatus, mutate func(*model.Payment)) (model.Payment, error)
		StatusTotals(ctx context.Context) (model.StatusTotals, error)
	}

	ProviderRegistry interface {
		Provider(coin model.Coin, network model.Network) (chain.Provider, error)
	}

	ChainProvider interface {
		chain.Provider
	}

	Notifier interface {
		PaymentStatusChanged(ctx context.Context, event notify.Event) error
	}

	WatcherMetrics interface {
		ObserveCycle(err error, records int, started time.Time)
		ObserveCheck(coin model.Coin, err error, started time.Time)
		ObserveTransition(coin model.Coin, from, to model.PaymentStatus)
	}

	PaymentsMetrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRejected(reason string)
		ObserveStaleServed()
	}
)
