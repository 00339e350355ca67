package service

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/model"
)

// outcome is what one verification check decided for a record. status equals
// the record's current status when nothing moves; the remaining fields are
// applied regardless so attempt counters and timestamps stay current.
type outcome struct {
	status        model.PaymentStatus
	confirmations uint32
	actualAmount  decimal.Decimal
	checkAttempts uint32
	lastError     string
	reason        string
}

func (o outcome) transitioned(from model.PaymentStatus) bool {
	return o.status != from
}

// decide maps a provider answer (or failure) onto the status graph. It is
// pure: no clock reads, no I/O, everything it needs comes in as arguments.
func decide(p model.Payment, tx *chain.Tx, lookupErr error, now time.Time, cfg WatcherConfig) outcome {
	out := outcome{
		status:        p.Status,
		confirmations: p.Confirmations,
		actualAmount:  p.ActualAmountCrypto,
		checkAttempts: p.CheckAttempts,
	}

	switch {
	case lookupErr == nil:
		return decideFromTx(p, tx, out, cfg)

	case errors.Is(lookupErr, chain.ErrProviderDisagreement):
		out.status = model.StatusManualReview
		out.lastError = lookupErr.Error()
		out.reason = "chain data providers disagree"
		return out

	case errors.Is(lookupErr, chain.ErrTxNotFound):
		if p.Status == model.StatusPending {
			if now.Sub(p.SubmittedAt) > cfg.ExpiryWindow {
				out.status = model.StatusExpired
				out.reason = "transaction never appeared on chain within the expiry window"
			}
			return out
		}
		// A previously sighted transaction has vanished (reorg or wrong
		// provider answer earlier). Count it like a failed check.
		return recordFailure(out, lookupErr, cfg, "transaction disappeared after being sighted")

	default:
		return recordFailure(out, lookupErr, cfg, "provider checks kept failing")
	}
}

func decideFromTx(p model.Payment, tx *chain.Tx, out outcome, cfg WatcherConfig) outcome {
	out.checkAttempts = 0
	out.lastError = ""

	if tx.Status == chain.TxFailed {
		out.status = model.StatusFailed
		out.reason = "transaction failed on chain"
		return out
	}

	confirmations := clampConfirmations(tx.Confirmations)
	if confirmations < p.Confirmations {
		// Stale answer from a lagging node; keep what we already know.
		out.checkAttempts = p.CheckAttempts
		return out
	}
	out.confirmations = confirmations
	if tx.AmountKnown {
		out.actualAmount = tx.Amount
	}

	if p.Status == model.StatusPending {
		// First sighting. Even a transaction already past its threshold goes
		// through confirming; the amount check runs on the next pass.
		out.status = model.StatusConfirming
		return out
	}

	// confirming
	if confirmations < p.RequiredConfirmations {
		return out
	}
	return decideAmount(p, tx, out, cfg)
}

// decideAmount settles a fully confirmed payment against the claimed amount.
// Overpaying is the customer's prerogative; underpaying below the tolerance
// is not.
func decideAmount(p model.Payment, tx *chain.Tx, out outcome, cfg WatcherConfig) outcome {
	if !tx.AmountKnown {
		out.status = model.StatusManualReview
		out.reason = "received amount could not be determined"
		return out
	}
	if p.AmountCrypto.IsPositive() {
		ratio := tx.Amount.Div(p.AmountCrypto)
		if ratio.LessThan(cfg.UnderpayRatio) {
			out.status = model.StatusUnderpaid
			out.reason = "received amount below claimed amount"
			return out
		}
	}
	out.status = model.StatusConfirmed
	return out
}

func recordFailure(out outcome, lookupErr error, cfg WatcherConfig, reason string) outcome {
	out.checkAttempts++
	out.lastError = lookupErr.Error()
	if out.checkAttempts >= cfg.MaxCheckAttempts {
		out.status = model.StatusManualReview
		out.reason = reason
	}
	return out
}

func clampConfirmations(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
