// Package evm looks transactions up on Ethereum-compatible chains (ETH, BNB
// Smart Chain, Base and the ERC-20 stablecoins) through plain JSON-RPC.
// ERC-20 amounts come from the receipt's Transfer logs, native amounts from
// the transaction value.
package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

// transferTopic is keccak256("Transfer(address,address,uint256)").
const transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	rl         ratelimit.Limiter
	metrics    Metrics
}

func NewClient(endpoint string, timeout time.Duration, rps int, metrics Metrics) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		rl:         ratelimit.New(rps),
		metrics:    metrics,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type receiptResult struct {
	Status      string `json:"status"`
	BlockNumber string `json:"blockNumber"`
	Logs        []struct {
		Address string   `json:"address"`
		Topics  []string `json:"topics"`
		Data    string   `json:"data"`
	} `json:"logs"`
}

type txResult struct {
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber string `json:"blockNumber"`
}

func (c *Client) TransactionStatus(ctx context.Context, txHash string, w wallet.Wallet) (tx *chain.Tx, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("transaction_status", err, started)
	}()

	var receipt *receiptResult
	if err = c.call(ctx, "eth_getTransactionReceipt", []any{txHash}, &receipt); err != nil {
		return nil, err
	}

	if receipt == nil {
		// No receipt yet; a mempool transaction still resolves by hash.
		var pending *txResult
		if err = c.call(ctx, "eth_getTransactionByHash", []any{txHash}, &pending); err != nil {
			return nil, err
		}
		if pending == nil {
			return nil, chain.ErrTxNotFound
		}
		return &chain.Tx{Status: chain.TxPending}, nil
	}

	if receipt.Status != "0x1" {
		return &chain.Tx{Status: chain.TxFailed}, nil
	}

	txBlock, err := parseHexUint(receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("parse receipt block number: %w", err)
	}

	var latestHex string
	if err = c.call(ctx, "eth_blockNumber", []any{}, &latestHex); err != nil {
		return nil, err
	}
	latest, err := parseHexUint(latestHex)
	if err != nil {
		return nil, fmt.Errorf("parse latest block number: %w", err)
	}

	tx = &chain.Tx{
		Status:      chain.TxSuccess,
		BlockHeight: txBlock,
	}
	if latest >= txBlock {
		tx.Confirmations = latest - txBlock + 1
	}

	if isToken(w.Coin) {
		tx.Amount, tx.AmountKnown = c.tokenAmount(receipt, w)
		return tx, nil
	}

	var full *txResult
	if err = c.call(ctx, "eth_getTransactionByHash", []any{txHash}, &full); err != nil {
		return nil, err
	}
	if full != nil && strings.EqualFold(full.To, w.Address) {
		value, parseErr := parseHexBig(full.Value)
		if parseErr != nil {
			return nil, fmt.Errorf("parse transaction value: %w", parseErr)
		}
		tx.Amount = decimal.NewFromBigInt(value, -int32(w.Decimals))
		tx.AmountKnown = true
	} else if full != nil {
		// Transaction exists but pays someone else.
		tx.Amount = decimal.Zero
		tx.AmountKnown = true
	}
	return tx, nil
}

// tokenAmount sums Transfer events addressed to our wallet. Other transfers
// in the same transaction (router hops, fee skims) are ignored.
func (c *Client) tokenAmount(receipt *receiptResult, w wallet.Wallet) (decimal.Decimal, bool) {
	wantRecipient := paddedTopicAddress(w.Address)
	total := new(big.Int)
	found := false
	for _, log := range receipt.Logs {
		if len(log.Topics) < 3 || !strings.EqualFold(log.Topics[0], transferTopic) {
			continue
		}
		if !strings.EqualFold(log.Topics[2], wantRecipient) {
			continue
		}
		amount, err := parseHexBig(log.Data)
		if err != nil {
			continue
		}
		total.Add(total, amount)
		found = true
	}
	if !found {
		return decimal.Zero, true
	}
	return decimal.NewFromBigInt(total, -int32(w.Decimals)), true
}

func isToken(coin model.Coin) bool {
	return coin == model.USDT || coin == model.USDC
}

// paddedTopicAddress left-pads a 20-byte address to the 32-byte topic form.
func paddedTopicAddress(address string) string {
	hexPart := strings.TrimPrefix(strings.ToLower(address), "0x")
	return "0x" + strings.Repeat("0", 64-len(hexPart)) + hexPart
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	c.rl.Take()

	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return fmt.Errorf("encode rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s responded %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s: %s (code %d)", method, rpcResp.Error.Message, rpcResp.Error.Code)
	}
	if len(rpcResp.Result) == 0 || bytes.Equal(rpcResp.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode rpc %s result: %w", method, err)
	}
	return nil
}

func parseHexUint(s string) (uint64, error) {
	v, err := parseHexBig(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("value %s overflows uint64", s)
	}
	return v.Uint64(), nil
}

func parseHexBig(s string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if trimmed == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity %q", s)
	}
	return v, nil
}

var _ chain.Provider = (*Client)(nil)
