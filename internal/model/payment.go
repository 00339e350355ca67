// Package model defines domain models for crypto payment reconciliation.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coin string
type Network string

var (
	BTC  Coin = "BTC"
	ETH  Coin = "ETH"
	SOL  Coin = "SOL"
	BNB  Coin = "BNB"
	USDT Coin = "USDT"
	USDC Coin = "USDC"
)

// PaymentStatus describes where a payment sits in the reconciliation lifecycle.
type PaymentStatus string

var (
	// StatusPending marks a submitted payment not yet observed on-chain.
	StatusPending PaymentStatus = "pending"
	// StatusConfirming marks a payment observed on-chain below its confirmation threshold.
	StatusConfirming PaymentStatus = "confirming"
	// StatusConfirmed marks a settled payment.
	StatusConfirmed PaymentStatus = "confirmed"
	// StatusFailed marks a payment whose transaction was reverted or dropped.
	StatusFailed PaymentStatus = "failed"
	// StatusExpired marks a payment never sighted on-chain within the expiry window.
	StatusExpired PaymentStatus = "expired"
	// StatusUnderpaid marks a confirmed transaction that carried less value than claimed.
	StatusUnderpaid PaymentStatus = "underpaid"
	// StatusManualReview marks an ambiguous payment waiting for an operator.
	StatusManualReview PaymentStatus = "manual_review"
)

// transitions holds the allowed edges of the status graph. Terminal states
// have no outgoing edges and never appear as keys.
var transitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:      {StatusConfirming, StatusExpired, StatusFailed, StatusManualReview},
	StatusConfirming:   {StatusConfirming, StatusConfirmed, StatusUnderpaid, StatusFailed, StatusManualReview},
	StatusUnderpaid:    {StatusManualReview},
	StatusManualReview: {StatusConfirming, StatusConfirmed, StatusFailed},
}

// CanTransition reports whether the status graph allows moving from one status
// to another. Staying in place is only allowed where the graph has a self edge.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no outgoing edges.
func (s PaymentStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirming, StatusConfirmed, StatusFailed,
		StatusExpired, StatusUnderpaid, StatusManualReview:
		return true
	}
	return false
}

// StatusBucket groups statuses for aggregate reporting.
type StatusBucket string

var (
	BucketConfirmed StatusBucket = "confirmed"
	BucketPending   StatusBucket = "pending"
	BucketFailed    StatusBucket = "failed"
)

// Bucket maps a status onto its reporting bucket. Payments waiting on an
// operator count as pending so dashboards never under-report exposure.
func (s PaymentStatus) Bucket() StatusBucket {
	switch s {
	case StatusConfirmed:
		return BucketConfirmed
	case StatusFailed, StatusExpired, StatusUnderpaid:
		return BucketFailed
	default:
		return BucketPending
	}
}

// Payment is one customer payment attempt tracked through reconciliation.
// The tx hash is kept encrypted at rest; its digest supports lookups.
type Payment struct {
	OrderNumber           string
	TxHashEncrypted       string
	TxHashDigest          string
	Coin                  Coin
	Network               Network
	WalletAddress         string
	SenderWallet          string
	AmountUSD             decimal.Decimal
	AmountCrypto          decimal.Decimal
	ActualAmountCrypto    decimal.Decimal
	Status                PaymentStatus
	Confirmations         uint32
	RequiredConfirmations uint32
	CheckAttempts         uint32
	LastError             string
	GuestEmailDigest      string
	ProductName           string
	Quantity              uint32
	SubmittedAt           time.Time
	ConfirmedAt           *time.Time
	LastCheckedAt         *time.Time
	Version               uint64
}

// StatusTotals is the aggregate rollup served on the public dashboard.
type StatusTotals struct {
	ConfirmedUSD   decimal.Decimal
	PendingUSD     decimal.Decimal
	FailedUSD      decimal.Decimal
	ConfirmedCount uint64
	PendingCount   uint64
	FailedCount    uint64
	TotalCount     uint64
}
