package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/crypt"
	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/store"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

const historyLimit = 25

// ValidationError rejects a submission with enough structure for the API to
// point at the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SubmitRequest carries one claimed payment from the checkout flow.
type SubmitRequest struct {
	OrderNumber  string
	TxHash       string
	Coin         model.Coin
	Network      model.Network
	AmountUSD    decimal.Decimal
	AmountCrypto decimal.Decimal
	SenderWallet string
	GuestEmail   string
	ProductName  string
	Quantity     uint32
}

// HistoryEntry is one payment prepared for customer display: the stored record
// with the tx hash decrypted and an explorer link rendered.
type HistoryEntry struct {
	Payment     model.Payment
	TxHash      string
	ExplorerURL string
}

// PaymentsService handles submission and customer history.
type PaymentsService struct {
	store   PaymentStore
	wallets *wallet.Registry
	cipher  *crypt.Cipher
	metrics PaymentsMetrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewPaymentsService(
	store PaymentStore,
	wallets *wallet.Registry,
	cipher *crypt.Cipher,
	metrics PaymentsMetrics,
	logger *zap.Logger,
) (*PaymentsService, error) {
	if metrics == nil {
		return nil, errors.New("payments metrics is required")
	}
	return &PaymentsService{
		store:   store,
		wallets: wallets,
		cipher:  cipher,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Submit validates a claimed payment and records it as pending. The tx hash
// is encrypted before it touches the store; only digests are queryable.
func (s *PaymentsService) Submit(ctx context.Context, req SubmitRequest) (p model.Payment, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("submit", err, started)
	}()

	w, vErr := s.validate(&req)
	if vErr != nil {
		s.metrics.ObserveRejected(vErr.Field)
		err = vErr
		return model.Payment{}, err
	}

	encrypted, err := s.cipher.Encrypt(req.TxHash)
	if err != nil {
		return model.Payment{}, fmt.Errorf("encrypt tx hash: %w", err)
	}

	now := s.now().UTC()
	p = model.Payment{
		OrderNumber:           req.OrderNumber,
		TxHashEncrypted:       encrypted,
		TxHashDigest:          crypt.Digest(req.TxHash),
		Coin:                  req.Coin,
		Network:               req.Network,
		WalletAddress:         w.Address,
		SenderWallet:          strings.TrimSpace(req.SenderWallet),
		AmountUSD:             req.AmountUSD,
		AmountCrypto:          req.AmountCrypto,
		ActualAmountCrypto:    decimal.Zero,
		Status:                model.StatusPending,
		RequiredConfirmations: w.RequiredConfirmations,
		GuestEmailDigest:      crypt.Digest(req.GuestEmail),
		ProductName:           strings.TrimSpace(req.ProductName),
		Quantity:              req.Quantity,
		SubmittedAt:           now,
	}

	if err = s.store.InsertPayment(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicateOrder) {
			s.metrics.ObserveRejected("order_number")
			return model.Payment{}, err
		}
		return model.Payment{}, fmt.Errorf("insert payment: %w", err)
	}

	s.logger.Info("payment submitted",
		zap.String("order_number", p.OrderNumber),
		zap.String("coin", string(p.Coin)),
		zap.String("network", string(p.Network)),
		zap.String("amount_usd", p.AmountUSD.String()),
	)
	return p, nil
}

func (s *PaymentsService) validate(req *SubmitRequest) (wallet.Wallet, *ValidationError) {
	req.OrderNumber = strings.TrimSpace(req.OrderNumber)
	req.TxHash = strings.TrimSpace(req.TxHash)
	req.GuestEmail = strings.ToLower(strings.TrimSpace(req.GuestEmail))

	if req.OrderNumber == "" || len(req.OrderNumber) > 64 {
		return wallet.Wallet{}, &ValidationError{Field: "orderNumber", Message: "order number is required"}
	}

	w, err := s.wallets.Find(req.Coin, req.Network)
	if err != nil {
		return wallet.Wallet{}, &ValidationError{Field: "network", Message: fmt.Sprintf("unsupported coin %q on network %q", req.Coin, req.Network)}
	}

	if err := w.ValidateTxHash(req.TxHash); err != nil {
		return wallet.Wallet{}, &ValidationError{Field: "txHash", Message: "transaction hash does not match the expected format for this network"}
	}

	if !req.AmountUSD.IsPositive() {
		return wallet.Wallet{}, &ValidationError{Field: "amountUsd", Message: "amount must be positive"}
	}
	if !req.AmountCrypto.IsPositive() {
		return wallet.Wallet{}, &ValidationError{Field: "amountCrypto", Message: "amount must be positive"}
	}

	if req.GuestEmail == "" {
		return wallet.Wallet{}, &ValidationError{Field: "email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		return wallet.Wallet{}, &ValidationError{Field: "email", Message: "invalid email address"}
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	return w, nil
}

// History returns the customer's most recent payments, newest first, with tx
// hashes decrypted for display. A record whose ciphertext cannot be opened is
// returned without a hash rather than dropped.
func (s *PaymentsService) History(ctx context.Context, email string) (entries []HistoryEntry, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("history", err, started)
	}()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		err = &ValidationError{Field: "email", Message: "email is required"}
		return nil, err
	}

	payments, err := s.store.PaymentsByEmailDigest(ctx, crypt.Digest(email), historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	entries = make([]HistoryEntry, 0, len(payments))
	for _, p := range payments {
		entry := HistoryEntry{Payment: p}
		hash, decErr := s.cipher.Decrypt(p.TxHashEncrypted)
		if decErr != nil {
			s.logger.Warn("undecryptable tx hash in history",
				zap.String("order_number", p.OrderNumber), zap.Error(decErr))
		} else {
			entry.TxHash = hash
			if w, wErr := s.wallets.Find(p.Coin, p.Network); wErr == nil {
				entry.ExplorerURL = w.ExplorerURL(hash)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
