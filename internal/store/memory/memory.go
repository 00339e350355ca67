// Package memory provides an in-memory Store used in tests and local
// development, mirroring the semantics of the ClickHouse repository.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/store"
)

// Store keeps payment records in a map guarded by a mutex.
type Store struct {
	mu       sync.RWMutex
	payments map[string]model.Payment
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{payments: make(map[string]model.Payment)}
}

// InsertPayment creates a record, rejecting duplicate order numbers.
func (s *Store) InsertPayment(ctx context.Context, p model.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.OrderNumber]; ok {
		return store.ErrDuplicateOrder
	}
	p.Version = 1
	s.payments[p.OrderNumber] = p
	return nil
}

// PaymentByOrder returns the record for an order number.
func (s *Store) PaymentByOrder(ctx context.Context, orderNumber string) (model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return model.Payment{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[orderNumber]
	if !ok {
		return model.Payment{}, store.ErrNotFound
	}
	return p, nil
}

// PaymentsByStatus returns matching records, oldest submission first.
func (s *Store) PaymentsByStatus(ctx context.Context, statuses []model.PaymentStatus, limit int) ([]model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[model.PaymentStatus]struct{}, len(statuses))
	for _, st := range statuses {
		wanted[st] = struct{}{}
	}

	s.mu.RLock()
	var out []model.Payment
	for _, p := range s.payments {
		if _, ok := wanted[p.Status]; ok {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PaymentsByEmailDigest returns a customer's records, newest first.
func (s *Store) PaymentsByEmailDigest(ctx context.Context, digest string, limit int) ([]model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if digest == "" {
		return nil, nil
	}

	s.mu.RLock()
	var out []model.Payment
	for _, p := range s.payments {
		if p.GuestEmailDigest == digest {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdatePayment mutates a record only when its status matches expected.
func (s *Store) UpdatePayment(ctx context.Context, orderNumber string, expected model.PaymentStatus, mutate func(*model.Payment)) (model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return model.Payment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[orderNumber]
	if !ok {
		return model.Payment{}, store.ErrNotFound
	}
	if p.Status != expected {
		return model.Payment{}, store.ErrStaleUpdate
	}

	mutate(&p)
	p.Version++
	s.payments[orderNumber] = p
	return p, nil
}

// StatusTotals aggregates all records into dashboard buckets.
func (s *Store) StatusTotals(ctx context.Context) (model.StatusTotals, error) {
	if err := ctx.Err(); err != nil {
		return model.StatusTotals{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals model.StatusTotals
	for _, p := range s.payments {
		totals.TotalCount++
		switch p.Status.Bucket() {
		case model.BucketConfirmed:
			totals.ConfirmedCount++
			totals.ConfirmedUSD = totals.ConfirmedUSD.Add(p.AmountUSD)
		case model.BucketFailed:
			totals.FailedCount++
			totals.FailedUSD = totals.FailedUSD.Add(p.AmountUSD)
		default:
			totals.PendingCount++
			totals.PendingUSD = totals.PendingUSD.Add(p.AmountUSD)
		}
	}
	return totals, nil
}
