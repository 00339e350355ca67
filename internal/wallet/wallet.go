// Package wallet holds the allow-list of coins and networks the store accepts
// payments on, together with per-chain validation rules.
package wallet

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gagliardetto/solana-go"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

var (
	ErrUnsupported   = errors.New("unsupported coin/network")
	ErrInvalidTxHash = errors.New("invalid transaction hash")
)

// Wallet is one receive address the shop accepts payments on.
type Wallet struct {
	Coin                  model.Coin
	Network               model.Network
	Address               string
	Decimals              uint8
	RequiredConfirmations uint32
	ExplorerTxURL         string // fmt pattern with one %s for the tx hash
}

// Registry resolves supported coin/network pairs to their wallet configuration.
type Registry struct {
	wallets []Wallet
}

// NewRegistry builds a registry from the given wallets. Bitcoin receive
// addresses are decoded up front so a typo in deployment config fails fast.
func NewRegistry(wallets []Wallet) (*Registry, error) {
	for _, w := range wallets {
		if w.Coin == "" || w.Network == "" || w.Address == "" {
			return nil, fmt.Errorf("incomplete wallet entry %q/%q", w.Coin, w.Network)
		}
		if w.RequiredConfirmations == 0 {
			return nil, fmt.Errorf("wallet %s/%s: required confirmations must be positive", w.Coin, w.Network)
		}
		if w.Coin == model.BTC {
			if _, err := btcutil.DecodeAddress(w.Address, &chaincfg.MainNetParams); err != nil {
				return nil, fmt.Errorf("wallet %s/%s: decode address: %w", w.Coin, w.Network, err)
			}
		}
	}
	return &Registry{wallets: wallets}, nil
}

// Default returns the registry of production receive addresses.
func Default() *Registry {
	r, err := NewRegistry([]Wallet{
		{
			Coin:                  model.BTC,
			Network:               "Bitcoin",
			Address:               "bc1purm66ng2asctqsl87jrjp6sk0sml6q8fpeymsl90pxdgsa70hm2qtramdl",
			Decimals:              8,
			RequiredConfirmations: 3,
			ExplorerTxURL:         "https://mempool.space/tx/%s",
		},
		{
			Coin:                  model.ETH,
			Network:               "Ethereum (ERC-20)",
			Address:               "0xfC851C016d1f4D4031f7d20320252cb283169DF3",
			Decimals:              18,
			RequiredConfirmations: 12,
			ExplorerTxURL:         "https://etherscan.io/tx/%s",
		},
		{
			Coin:                  model.USDT,
			Network:               "Ethereum (ERC-20)",
			Address:               "0xfC851C016d1f4D4031f7d20320252cb283169DF3",
			Decimals:              6,
			RequiredConfirmations: 12,
			ExplorerTxURL:         "https://etherscan.io/tx/%s",
		},
		{
			Coin:                  model.USDC,
			Network:               "Ethereum (ERC-20)",
			Address:               "0xfC851C016d1f4D4031f7d20320252cb283169DF3",
			Decimals:              6,
			RequiredConfirmations: 12,
			ExplorerTxURL:         "https://etherscan.io/tx/%s",
		},
		{
			Coin:                  model.ETH,
			Network:               "Base (L2)",
			Address:               "0xa54530764D2FfAA8153E91389d877533c42D9f7e",
			Decimals:              18,
			RequiredConfirmations: 12,
			ExplorerTxURL:         "https://basescan.org/tx/%s",
		},
		{
			Coin:                  model.BNB,
			Network:               "BNB Smart Chain (BEP-20)",
			Address:               "0xcd010464272d0190de122093bfc9106c5f37b1f3",
			Decimals:              18,
			RequiredConfirmations: 15,
			ExplorerTxURL:         "https://bscscan.com/tx/%s",
		},
		{
			Coin:                  model.SOL,
			Network:               "Solana",
			Address:               "BkELWyHiaCkw96k5iYK2iF4yZfhzDdQNzX8FcdK8zkWE",
			Decimals:              9,
			RequiredConfirmations: 32,
			ExplorerTxURL:         "https://solscan.io/tx/%s",
		},
	})
	if err != nil {
		panic("wallet: invalid default registry: " + err.Error())
	}
	return r
}

// Find returns the wallet for a coin/network pair, or ErrUnsupported.
func (r *Registry) Find(coin model.Coin, network model.Network) (Wallet, error) {
	for _, w := range r.wallets {
		if w.Coin == coin && w.Network == network {
			return w, nil
		}
	}
	return Wallet{}, fmt.Errorf("%w: %s on %s", ErrUnsupported, coin, network)
}

// Wallets returns all configured wallets.
func (r *Registry) Wallets() []Wallet {
	out := make([]Wallet, len(r.wallets))
	copy(out, r.wallets)
	return out
}

var evmTxHashRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// ValidateTxHash checks that a hash has the expected shape for the wallet's
// chain. It does not prove the transaction exists; the watcher does that.
func (w Wallet) ValidateTxHash(hash string) error {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTxHash)
	}

	switch w.Coin {
	case model.BTC:
		if _, err := chainhash.NewHashFromStr(hash); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTxHash, err)
		}
	case model.SOL:
		if _, err := solana.SignatureFromBase58(hash); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTxHash, err)
		}
	default:
		// ETH, BNB and the ERC-20 stablecoins all use 0x-prefixed 32-byte hashes.
		if !evmTxHashRe.MatchString(hash) {
			return fmt.Errorf("%w: expected 0x-prefixed 64 hex chars", ErrInvalidTxHash)
		}
	}
	return nil
}

// ExplorerURL renders the public explorer link for a tx hash.
func (w Wallet) ExplorerURL(hash string) string {
	return fmt.Sprintf(w.ExplorerTxURL, hash)
}
