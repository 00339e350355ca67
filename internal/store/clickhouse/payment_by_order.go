package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/store"
)

// PaymentByOrder returns the latest version of one payment record.
func (r *Repository) PaymentByOrder(ctx context.Context, orderNumber string) (model.Payment, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("payment_by_order", err, start)
	}()

	query := `
SELECT ` + paymentColumns + `
FROM crypto_payments FINAL
WHERE order_number = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, orderNumber)
	if err != nil {
		return model.Payment{}, fmt.Errorf("query payment: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		err = store.ErrNotFound
		return model.Payment{}, err
	}

	p, err := scanPayment(rows)
	if err != nil {
		return model.Payment{}, fmt.Errorf("scan payment: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Payment{}, fmt.Errorf("iterate payment: %w", err)
	}
	return p, nil
}
