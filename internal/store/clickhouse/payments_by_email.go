package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

// PaymentsByEmailDigest returns a customer's records, newest submission first.
// Lookup is by digest so the query never touches a plaintext email.
func (r *Repository) PaymentsByEmailDigest(ctx context.Context, digest string, limit int) ([]model.Payment, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("payments_by_email", err, start)
	}()

	if digest == "" {
		return nil, nil
	}

	query := `
SELECT ` + paymentColumns + `
FROM crypto_payments FINAL
WHERE guest_email_digest = ?
ORDER BY submitted_at DESC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, digest, limit)
	if err != nil {
		return nil, fmt.Errorf("query payments by email: %w", err)
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
