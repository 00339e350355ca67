package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/store"
)

// UpdatePayment applies mutate only when the stored status still equals
// expected, then appends a row with version+1. The watcher serializes checks
// per order, so read-check-insert here is the optimistic half of the guard:
// a checker holding a stale view fails the status comparison and backs off.
func (r *Repository) UpdatePayment(ctx context.Context, orderNumber string, expected model.PaymentStatus, mutate func(*model.Payment)) (model.Payment, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_payment", err, start)
	}()

	p, err := r.PaymentByOrder(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Payment{}, err
		}
		return model.Payment{}, fmt.Errorf("read current payment: %w", err)
	}

	if p.Status != expected {
		err = store.ErrStaleUpdate
		return model.Payment{}, err
	}

	mutate(&p)
	p.Version++
	if err = r.insertVersion(ctx, p); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}
