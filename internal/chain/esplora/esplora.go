// Package esplora looks Bitcoin transactions up through an Esplora-compatible
// HTTP API (blockstream.info, mempool.space). It needs no local node, which
// makes it the default BTC source and the cross-check for the node-backed one.
package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
	"github.com/bullmoney/cryptopay-backend/pkg/safe"
)

const DefaultBaseURL = "https://blockstream.info/api"

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	rl         ratelimit.Limiter
	metrics    Metrics
}

func NewClient(baseURL string, timeout time.Duration, rps int, metrics Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		rl:         ratelimit.New(rps),
		metrics:    metrics,
	}
}

type txResponse struct {
	TxID   string `json:"txid"`
	Status struct {
		Confirmed   bool   `json:"confirmed"`
		BlockHeight uint64 `json:"block_height"`
		BlockTime   int64  `json:"block_time"`
	} `json:"status"`
	Vout []struct {
		ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		Value               uint64 `json:"value"`
	} `json:"vout"`
}

func (c *Client) TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (tx *chain.Tx, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("transaction_status", err, started)
	}()

	var res txResponse
	if err = c.get(ctx, "/tx/"+txHash, &res); err != nil {
		return nil, err
	}

	// Value received by our wallet is the sum of outputs paying our address,
	// in satoshi.
	var sats uint64
	for _, out := range res.Vout {
		if out.ScriptPubKeyAddress == w.Address {
			sats += out.Value
		}
	}

	amount, err := safe.Int64(sats)
	if err != nil {
		return nil, fmt.Errorf("tx %s received amount: %w", res.TxID, err)
	}

	tx = &chain.Tx{
		Status:      chain.TxPending,
		Amount:      decimal.New(amount, -8),
		AmountKnown: true,
	}
	if !res.Status.Confirmed {
		return tx, nil
	}

	tipHeight, err := c.tipHeight(ctx)
	if err != nil {
		return nil, err
	}

	tx.Status = chain.TxSuccess
	tx.BlockHeight = res.Status.BlockHeight
	if res.Status.BlockTime > 0 {
		tx.BlockTime = time.Unix(res.Status.BlockTime, 0).UTC()
	}
	if tipHeight >= res.Status.BlockHeight {
		tx.Confirmations = tipHeight - res.Status.BlockHeight + 1
	}
	return tx, nil
}

func (c *Client) tipHeight(ctx context.Context) (uint64, error) {
	body, err := c.getRaw(ctx, "/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse tip height: %w", err)
	}
	return height, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	body, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode esplora response: %w", err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	c.rl.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build esplora request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esplora request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, chain.ErrTxNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("esplora responded %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read esplora response: %w", err)
	}
	return body, nil
}

var _ chain.Provider = (*Client)(nil)

// Ping checks the API is reachable so a misconfigured base URL fails at startup.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.tipHeight(ctx); err != nil {
		return fmt.Errorf("esplora unreachable: %w", err)
	}
	return nil
}
