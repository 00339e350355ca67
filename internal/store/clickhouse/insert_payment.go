package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/store"
)

// InsertPayment creates the first version of a payment record. Order numbers
// are generated client-side, so duplicates indicate a resubmission and are
// rejected rather than merged.
func (r *Repository) InsertPayment(ctx context.Context, p model.Payment) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_payment", err, start)
	}()

	const existsQuery = `
SELECT 1
FROM crypto_payments FINAL
WHERE order_number = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, existsQuery, p.OrderNumber)
	if err != nil {
		return fmt.Errorf("query existing payment: %w", err)
	}
	exists := rows.Next()
	if closeErr := rows.Close(); closeErr != nil {
		err = fmt.Errorf("close rows: %w", closeErr)
		return err
	}
	if exists {
		err = store.ErrDuplicateOrder
		return err
	}

	p.Version = 1
	if err = r.insertVersion(ctx, p); err != nil {
		return err
	}
	return nil
}

func (r *Repository) insertVersion(ctx context.Context, p model.Payment) error {
	query := `
INSERT INTO crypto_payments (` + paymentColumns + `
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare payment batch: %w", err)
	}
	if err = appendPayment(batch, p); err != nil {
		return fmt.Errorf("append payment: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
