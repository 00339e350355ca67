// Package notify delivers payment status change events to an external
// endpoint. The shop frontend turns these into customer and admin emails.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bullmoney/cryptopay-backend/internal/model"
)

// Event describes one status transition worth telling the outside world about.
// It carries no transaction hash and no email, only digests and order data.
type Event struct {
	OrderNumber string              `json:"order_number"`
	Coin        model.Coin          `json:"coin"`
	Network     model.Network       `json:"network"`
	AmountUSD   decimal.Decimal     `json:"amount_usd"`
	From        model.PaymentStatus `json:"from"`
	To          model.PaymentStatus `json:"to"`
	Reason      string              `json:"reason,omitempty"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

type (
	Notifier interface {
		PaymentStatusChanged(ctx context.Context, event Event) error
	}

	Metrics interface {
		Observe(err error, started time.Time)
	}
)

// Webhook POSTs events as JSON to a single configured URL.
type Webhook struct {
	url        string
	httpClient *http.Client
	metrics    Metrics
}

func NewWebhook(url string, timeout time.Duration, metrics Metrics) *Webhook {
	return &Webhook{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}
}

func (w *Webhook) PaymentStatusChanged(ctx context.Context, event Event) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe(err, started)
	}()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*Webhook)(nil)

// Nop drops every event. Used when no webhook URL is configured.
type Nop struct{}

func (Nop) PaymentStatusChanged(context.Context, Event) error {
	return nil
}

var _ Notifier = Nop{}
