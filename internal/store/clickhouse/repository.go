// Package clickhouse implements the payment store on ClickHouse. Records are
// versioned rows in a ReplacingMergeTree; an update is an insert with a higher
// version and reads resolve the latest version with FINAL.
package clickhouse

import (
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type Repository struct {
	conn    clickhouse.Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}

// paymentColumns is the column list shared by every read, in scan order.
const paymentColumns = `
	order_number,
	tx_hash,
	tx_hash_digest,
	coin,
	network,
	wallet_address,
	sender_wallet,
	amount_usd,
	amount_crypto,
	actual_amount_crypto,
	status,
	confirmations,
	required_confirmations,
	check_attempts,
	last_error,
	guest_email_digest,
	product_name,
	quantity,
	submitted_at,
	confirmed_at,
	last_checked_at,
	version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (model.Payment, error) {
	var (
		p       model.Payment
		coin    string
		network string
		status  string
	)
	if err := row.Scan(
		&p.OrderNumber,
		&p.TxHashEncrypted,
		&p.TxHashDigest,
		&coin,
		&network,
		&p.WalletAddress,
		&p.SenderWallet,
		&p.AmountUSD,
		&p.AmountCrypto,
		&p.ActualAmountCrypto,
		&status,
		&p.Confirmations,
		&p.RequiredConfirmations,
		&p.CheckAttempts,
		&p.LastError,
		&p.GuestEmailDigest,
		&p.ProductName,
		&p.Quantity,
		&p.SubmittedAt,
		&p.ConfirmedAt,
		&p.LastCheckedAt,
		&p.Version,
	); err != nil {
		return model.Payment{}, err
	}
	p.Coin = model.Coin(coin)
	p.Network = model.Network(network)
	p.Status = model.PaymentStatus(status)
	return p, nil
}

func appendPayment(batch interface {
	Append(v ...any) error
}, p model.Payment) error {
	return batch.Append(
		p.OrderNumber,
		p.TxHashEncrypted,
		p.TxHashDigest,
		string(p.Coin),
		string(p.Network),
		p.WalletAddress,
		p.SenderWallet,
		p.AmountUSD,
		p.AmountCrypto,
		p.ActualAmountCrypto,
		string(p.Status),
		p.Confirmations,
		p.RequiredConfirmations,
		p.CheckAttempts,
		p.LastError,
		p.GuestEmailDigest,
		p.ProductName,
		p.Quantity,
		p.SubmittedAt,
		p.ConfirmedAt,
		p.LastCheckedAt,
		p.Version,
	)
}

func statusStrings(statuses []model.PaymentStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
