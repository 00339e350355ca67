// Package solana looks payment transactions up over Solana JSON-RPC. The
// received amount is the lamport balance delta of our wallet's account between
// the pre and post snapshots of the transaction.
package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
	"github.com/bullmoney/cryptopay-backend/pkg/safe"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const lamportDecimals = 9

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// RPC is the slice of the solana-go rpc client surface this provider needs.
	RPC interface {
		GetTransaction(ctx context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
		GetSlot(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
	}
)

type Provider struct {
	client  RPC
	rl      ratelimit.Limiter
	metrics Metrics
}

func NewProvider(client RPC, rps int, metrics Metrics) *Provider {
	return &Provider{
		client:  client,
		rl:      ratelimit.New(rps),
		metrics: metrics,
	}
}

func (p *Provider) TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (tx *chain.Tx, err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("transaction_status", err, started)
	}()

	sig, err := solana.SignatureFromBase58(txHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", chain.ErrTxNotFound, err)
	}

	p.rl.Take()
	maxVersion := uint64(0)
	res, err := p.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, chain.ErrTxNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if res == nil {
		return nil, chain.ErrTxNotFound
	}

	tx = &chain.Tx{Status: chain.TxSuccess, BlockHeight: res.Slot}
	if res.BlockTime != nil {
		tx.BlockTime = res.BlockTime.Time().UTC()
	}
	if res.Meta != nil && res.Meta.Err != nil {
		tx.Status = chain.TxFailed
		return tx, nil
	}

	p.rl.Take()
	currentSlot, err := p.client.GetSlot(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if currentSlot >= res.Slot {
		tx.Confirmations = currentSlot - res.Slot
	}

	amount, known, err := receivedLamports(res, w.Address)
	if err != nil {
		return nil, err
	}
	if known {
		tx.Amount = decimal.New(amount, -lamportDecimals)
		tx.AmountKnown = true
	}
	return tx, nil
}

// receivedLamports resolves our wallet's index in the transaction's account
// keys and returns its balance delta. A transaction that never touches the
// wallet reports a known zero amount.
func receivedLamports(res *rpc.GetTransactionResult, address string) (int64, bool, error) {
	if res.Meta == nil || res.Transaction == nil {
		return 0, false, nil
	}

	parsed, err := res.Transaction.GetTransaction()
	if err != nil {
		return 0, false, fmt.Errorf("decode transaction envelope: %w", err)
	}

	target, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, false, fmt.Errorf("decode wallet address: %w", err)
	}

	for idx, key := range parsed.Message.AccountKeys {
		if !key.Equals(target) {
			continue
		}
		if idx >= len(res.Meta.PreBalances) || idx >= len(res.Meta.PostBalances) {
			return 0, false, nil
		}
		pre, err := safe.Int64(res.Meta.PreBalances[idx])
		if err != nil {
			return 0, false, fmt.Errorf("pre balance overflow: %w", err)
		}
		post, err := safe.Int64(res.Meta.PostBalances[idx])
		if err != nil {
			return 0, false, fmt.Errorf("post balance overflow: %w", err)
		}
		delta := post - pre
		if delta < 0 {
			delta = 0
		}
		return delta, true, nil
	}
	return 0, true, nil
}

var _ chain.Provider = (*Provider)(nil)
