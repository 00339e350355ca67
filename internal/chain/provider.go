// Package chain defines the on-chain lookup capability the confirmation
// watcher depends on, plus a registry keyed by coin and network and a quorum
// wrapper that cross-checks two providers for the same chain.
package chain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var (
	// ErrTxNotFound means the chain has no record of the transaction hash.
	ErrTxNotFound = errors.New("transaction not found")
	// ErrNoProvider means no provider is registered for the coin and network.
	ErrNoProvider = errors.New("no provider for coin and network")
	// ErrProviderDisagreement means two providers returned conflicting results
	// for the same transaction.
	ErrProviderDisagreement = errors.New("providers disagree on transaction")
)

type TxStatus string

var (
	TxSuccess = TxStatus("success")
	TxPending = TxStatus("pending")
	TxFailed  = TxStatus("failed")
)

// Tx is a provider's view of a payment transaction, reduced to what the
// watcher needs to drive a status transition.
type Tx struct {
	Status        TxStatus
	Confirmations uint64
	// Amount is the value received by the destination wallet, in whole coins.
	// AmountKnown is false when the provider cannot attribute an amount, e.g.
	// the transaction exists but pays none of our outputs yet.
	Amount      decimal.Decimal
	AmountKnown bool
	BlockHeight uint64
	BlockTime   time.Time
}

type (
	Provider interface {
		TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (*Tx, error)
	}
)

type registryKey struct {
	coin    model.Coin
	network model.Network
}

// Registry routes lookups to the provider registered for a coin and network.
type Registry struct {
	providers map[registryKey]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[registryKey]Provider)}
}

func (r *Registry) Register(coin model.Coin, network model.Network, p Provider) {
	r.providers[registryKey{coin: coin, network: network}] = p
}

func (r *Registry) Provider(coin model.Coin, network model.Network) (Provider, error) {
	p, ok := r.providers[registryKey{coin: coin, network: network}]
	if !ok {
		return nil, ErrNoProvider
	}
	return p, nil
}
