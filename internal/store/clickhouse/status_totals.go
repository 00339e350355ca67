package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

// StatusTotals rolls every payment up into the confirmed/pending/failed
// dashboard buckets in a single aggregation pass.
func (r *Repository) StatusTotals(ctx context.Context) (model.StatusTotals, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("status_totals", err, start)
	}()

	const query = `
SELECT
	sumIf(amount_usd, status = 'confirmed')                                    AS confirmed_usd,
	sumIf(amount_usd, status IN ('pending', 'confirming', 'manual_review'))    AS pending_usd,
	sumIf(amount_usd, status IN ('failed', 'expired', 'underpaid'))            AS failed_usd,
	countIf(status = 'confirmed')                                              AS confirmed_count,
	countIf(status IN ('pending', 'confirming', 'manual_review'))              AS pending_count,
	countIf(status IN ('failed', 'expired', 'underpaid'))                      AS failed_count,
	count()                                                                    AS total_count
FROM crypto_payments FINAL`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return model.StatusTotals{}, fmt.Errorf("query status totals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return model.StatusTotals{}, fmt.Errorf("status totals not found")
	}

	var totals model.StatusTotals
	if err = rows.Scan(
		&totals.ConfirmedUSD,
		&totals.PendingUSD,
		&totals.FailedUSD,
		&totals.ConfirmedCount,
		&totals.PendingCount,
		&totals.FailedCount,
		&totals.TotalCount,
	); err != nil {
		return model.StatusTotals{}, fmt.Errorf("scan status totals: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.StatusTotals{}, fmt.Errorf("iterate status totals: %w", err)
	}
	return totals, nil
}
