package chain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

// Quorum queries two independent providers for the same chain and compares
// their answers. A conflicting answer is worse than no answer: it means at
// least one data source is lying or lagging badly, so the caller gets
// ErrProviderDisagreement and can park the record for manual review.
//
// The secondary is best effort. If it errors while the primary succeeds, the
// primary's answer stands and the failure is only logged.
type Quorum struct {
	primary   Provider
	secondary Provider
	logger    *zap.Logger
}

func NewQuorum(primary, secondary Provider, logger *zap.Logger) *Quorum {
	return &Quorum{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (q *Quorum) TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (*Tx, error) {
	first, firstErr := q.primary.TransactionStatus(ctx, txHash, w)
	second, secondErr := q.secondary.TransactionStatus(ctx, txHash, w)

	switch {
	case firstErr == nil && secondErr == nil:
		if conflict := compareTx(first, second); conflict != "" {
			q.logger.Warn("providers disagree",
				zap.String("tx_hash_prefix", txHash[:min(len(txHash), 12)]),
				zap.String("conflict", conflict),
			)
			return nil, fmt.Errorf("%w: %s", ErrProviderDisagreement, conflict)
		}
		merged := *first
		if second.Confirmations < merged.Confirmations {
			merged.Confirmations = second.Confirmations
		}
		return &merged, nil
	case firstErr == nil:
		if !errors.Is(secondErr, ErrTxNotFound) {
			q.logger.Warn("secondary provider failed", zap.Error(secondErr))
			return first, nil
		}
		// Primary sees the transaction, secondary says it does not exist.
		if first.Status == TxSuccess {
			return nil, fmt.Errorf("%w: secondary has no record of a confirmed transaction", ErrProviderDisagreement)
		}
		return first, nil
	case secondErr == nil:
		if errors.Is(firstErr, ErrTxNotFound) && second.Status == TxSuccess {
			return nil, fmt.Errorf("%w: primary has no record of a confirmed transaction", ErrProviderDisagreement)
		}
		return nil, firstErr
	default:
		return nil, firstErr
	}
}

func compareTx(a, b *Tx) string {
	if a.Status != b.Status {
		// A one-block confirmation lag between sources is routine, not a
		// conflict. Only a settled status on both sides can contradict.
		if a.Status == TxFailed || b.Status == TxFailed {
			return fmt.Sprintf("status %s vs %s", a.Status, b.Status)
		}
		return ""
	}
	if a.Status == TxSuccess && a.AmountKnown && b.AmountKnown && !a.Amount.Equal(b.Amount) {
		return fmt.Sprintf("amount %s vs %s", a.Amount, b.Amount)
	}
	return ""
}
