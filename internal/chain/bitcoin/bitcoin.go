// Package bitcoin looks payment transactions up on a Bitcoin full node over
// JSON-RPC. It is the second opinion next to the Esplora source when both are
// configured.
package bitcoin

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/txscript"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
	"github.com/bullmoney/cryptopay-backend/pkg/safe"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// NodeClient is the slice of the btcd rpcclient surface this provider needs.
	NodeClient interface {
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

type Provider struct {
	node    NodeClient
	rl      ratelimit.Limiter
	metrics Metrics
	params  *chaincfg.Params
}

func NewProvider(node NodeClient, rps int, metrics Metrics) *Provider {
	return &Provider{
		node:    node,
		rl:      ratelimit.New(rps),
		metrics: metrics,
		params:  &chaincfg.MainNetParams,
	}
}

// Dial connects to a Bitcoin node over plain HTTP POST. The caller owns the
// returned client and must Shutdown it.
func Dial(host, user, pass string) (*rpcclient.Client, error) {
	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         pass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

func (p *Provider) TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (tx *chain.Tx, err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe("transaction_status", err, started)
	}()

	// rpcclient carries no context; honor cancellation before the blocking call.
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	p.rl.Take()

	hash, err := chainhash.NewHashFromStr(txHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", chain.ErrTxNotFound, err)
	}

	res, err := p.node.GetRawTransactionVerbose(hash)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			return nil, chain.ErrTxNotFound
		}
		return nil, fmt.Errorf("get raw transaction: %w", err)
	}

	var sats uint64
	for idx, vout := range res.Vout {
		addrs, addrErr := p.outputAddresses(vout)
		if addrErr != nil {
			return nil, fmt.Errorf("tx %s output %d addresses: %w", res.Txid, idx, addrErr)
		}
		for _, addr := range addrs {
			if addr != w.Address {
				continue
			}
			value, convErr := btcToSatoshis(vout.Value)
			if convErr != nil {
				return nil, fmt.Errorf("tx %s output %d value: %w", res.Txid, idx, convErr)
			}
			sats += value
			break
		}
	}

	amount, err := safe.Int64(sats)
	if err != nil {
		return nil, fmt.Errorf("tx %s received amount: %w", res.Txid, err)
	}

	tx = &chain.Tx{
		Status:        chain.TxPending,
		Confirmations: res.Confirmations,
		Amount:        decimal.New(amount, -8),
		AmountKnown:   true,
	}
	if res.Confirmations > 0 {
		tx.Status = chain.TxSuccess
	}
	if res.Blocktime > 0 {
		tx.BlockTime = time.Unix(res.Blocktime, 0).UTC()
	}
	return tx, nil
}

func (p *Provider) outputAddresses(vout btcjson.Vout) ([]string, error) {
	if len(vout.ScriptPubKey.Addresses) > 0 {
		return append([]string(nil), vout.ScriptPubKey.Addresses...), nil
	}
	if vout.ScriptPubKey.Address != "" {
		return []string{vout.ScriptPubKey.Address}, nil
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil, nil
	}

	scriptBytes, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, p.params)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

func btcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

var _ chain.Provider = (*Provider)(nil)
