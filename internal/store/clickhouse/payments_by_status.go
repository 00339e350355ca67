package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

// PaymentsByStatus returns up to limit records in the given statuses, oldest
// submission first, so long-waiting payments are always re-checked before
// fresh ones.
func (r *Repository) PaymentsByStatus(ctx context.Context, statuses []model.PaymentStatus, limit int) ([]model.Payment, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("payments_by_status", err, start)
	}()

	if len(statuses) == 0 {
		return nil, nil
	}

	query := `
SELECT ` + paymentColumns + `
FROM crypto_payments FINAL
WHERE status IN (?)
ORDER BY submitted_at ASC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, statusStrings(statuses), limit)
	if err != nil {
		return nil, fmt.Errorf("query payments by status: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var payments []model.Payment
	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			err = fmt.Errorf("scan payment: %w", scanErr)
			return nil, err
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}
