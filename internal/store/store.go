// Package store defines the persistence capability for payment records.
package store

import (
	"context"
	"errors"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

var (
	// ErrNotFound is returned when no record exists for the given key.
	ErrNotFound = errors.New("payment not found")
	// ErrDuplicateOrder is returned when an order number is already taken.
	ErrDuplicateOrder = errors.New("duplicate order number")
	// ErrStaleUpdate is returned when a conditional update finds the record in
	// a different status than the updater last observed.
	ErrStaleUpdate = errors.New("stale update: status changed concurrently")
)

// Store persists payment records. Implementations must make UpdatePayment
// conditional on the expected prior status so a slow checker can never clobber
// a newer state.
type Store interface {
	// InsertPayment creates a new record. Fails with ErrDuplicateOrder when the
	// order number already exists.
	InsertPayment(ctx context.Context, p model.Payment) error

	// PaymentByOrder returns the latest state of one record.
	PaymentByOrder(ctx context.Context, orderNumber string) (model.Payment, error)

	// PaymentsByStatus returns up to limit records in any of the given
	// statuses, oldest submission first.
	PaymentsByStatus(ctx context.Context, statuses []model.PaymentStatus, limit int) ([]model.Payment, error)

	// PaymentsByEmailDigest returns up to limit records for a guest email
	// digest, newest submission first.
	PaymentsByEmailDigest(ctx context.Context, digest string, limit int) ([]model.Payment, error)

	// UpdatePayment applies mutate to the record only if its current status
	// equals expected. Returns the updated record, ErrStaleUpdate on status
	// mismatch, or ErrNotFound.
	UpdatePayment(ctx context.Context, orderNumber string, expected model.PaymentStatus, mutate func(*model.Payment)) (model.Payment, error)

	// StatusTotals rolls all records up into the dashboard buckets.
	StatusTotals(ctx context.Context) (model.StatusTotals, error)
}
