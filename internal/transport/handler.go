// Package transport exposes the HTTP API.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/service"
	"github.com/bullmoney/cryptopay-backend/internal/store"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const maxBodyBytes = 1 << 16

type (
	PaymentsService interface {
		Submit(ctx context.Context, req service.SubmitRequest) (model.Payment, error)
		History(ctx context.Context, email string) ([]service.HistoryEntry, error)
	}

	MetricsService interface {
		Snapshot(ctx context.Context) (service.Snapshot, error)
	}
)

// Handler serves the payment endpoints consumed by the storefront.
type Handler struct {
	payments PaymentsService
	metrics  MetricsService
	logger   *zap.Logger
}

func NewHandler(payments PaymentsService, metrics MetricsService, logger *zap.Logger) *Handler {
	return &Handler{
		payments: payments,
		metrics:  metrics,
		logger:   logger,
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/payments", h.submit)
	mux.HandleFunc("POST /api/payments/history", h.history)
	mux.HandleFunc("GET /api/payments/metrics", h.snapshot)
	mux.HandleFunc("GET /health", h.health)
	return mux
}

type submitRequest struct {
	OrderNumber  string          `json:"orderNumber"`
	TxHash       string          `json:"txHash"`
	Coin         string          `json:"coin"`
	Network      string          `json:"network"`
	AmountUSD    decimal.Decimal `json:"amountUsd"`
	AmountCrypto decimal.Decimal `json:"amountCrypto"`
	SenderWallet string          `json:"senderWallet"`
	Email        string          `json:"email"`
	ProductName  string          `json:"productName"`
	Quantity     uint32          `json:"quantity"`
}

type submitResponse struct {
	OrderNumber           string `json:"orderNumber"`
	Status                string `json:"status"`
	StatusBucket          string `json:"statusBucket"`
	WalletAddress         string `json:"walletAddress"`
	RequiredConfirmations uint32 `json:"requiredConfirmations"`
	SubmittedAt           string `json:"submittedAt"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	p, err := h.payments.Submit(r.Context(), service.SubmitRequest{
		OrderNumber:  req.OrderNumber,
		TxHash:       req.TxHash,
		Coin:         model.Coin(req.Coin),
		Network:      model.Network(req.Network),
		AmountUSD:    req.AmountUSD,
		AmountCrypto: req.AmountCrypto,
		SenderWallet: req.SenderWallet,
		GuestEmail:   req.Email,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
	})
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Message, vErr.Field)
		case errors.Is(err, store.ErrDuplicateOrder):
			writeError(w, http.StatusConflict, "a payment for this order already exists", "orderNumber")
		default:
			h.logger.Error("submit payment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error", "")
		}
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		OrderNumber:           p.OrderNumber,
		Status:                string(p.Status),
		StatusBucket:          string(p.Status.Bucket()),
		WalletAddress:         p.WalletAddress,
		RequiredConfirmations: p.RequiredConfirmations,
		SubmittedAt:           p.SubmittedAt.Format(time.RFC3339),
	})
}

type historyRequest struct {
	Session struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"session"`
}

type historyPayment struct {
	OrderNumber           string          `json:"orderNumber"`
	TxHash                string          `json:"txHash,omitempty"`
	ExplorerURL           string          `json:"explorerUrl,omitempty"`
	Coin                  string          `json:"coin"`
	Network               string          `json:"network"`
	AmountUSD             decimal.Decimal `json:"amountUsd"`
	AmountCrypto          decimal.Decimal `json:"amountCrypto"`
	ActualAmountCrypto    decimal.Decimal `json:"actualAmountCrypto"`
	Status                string          `json:"status"`
	StatusBucket          string          `json:"statusBucket"`
	Confirmations         uint32          `json:"confirmations"`
	RequiredConfirmations uint32          `json:"requiredConfirmations"`
	ProductName           string          `json:"productName,omitempty"`
	Quantity              uint32          `json:"quantity"`
	SubmittedAt           string          `json:"submittedAt"`
	ConfirmedAt           string          `json:"confirmedAt,omitempty"`
}

type historyResponse struct {
	Payments []historyPayment `json:"payments"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if req.Session.ID == "" || req.Session.Email == "" {
		writeError(w, http.StatusUnauthorized, "a signed-in session is required", "")
		return
	}

	entries, err := h.payments.History(r.Context(), req.Session.Email)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Message, vErr.Field)
			return
		}
		h.logger.Error("load payment history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}

	resp := historyResponse{Payments: make([]historyPayment, 0, len(entries))}
	for _, e := range entries {
		item := historyPayment{
			OrderNumber:           e.Payment.OrderNumber,
			TxHash:                e.TxHash,
			ExplorerURL:           e.ExplorerURL,
			Coin:                  string(e.Payment.Coin),
			Network:               string(e.Payment.Network),
			AmountUSD:             e.Payment.AmountUSD,
			AmountCrypto:          e.Payment.AmountCrypto,
			ActualAmountCrypto:    e.Payment.ActualAmountCrypto,
			Status:                string(e.Payment.Status),
			StatusBucket:          string(e.Payment.Status.Bucket()),
			Confirmations:         e.Payment.Confirmations,
			RequiredConfirmations: e.Payment.RequiredConfirmations,
			ProductName:           e.Payment.ProductName,
			Quantity:              e.Payment.Quantity,
			SubmittedAt:           e.Payment.SubmittedAt.Format(time.RFC3339),
		}
		if e.Payment.ConfirmedAt != nil {
			item.ConfirmedAt = e.Payment.ConfirmedAt.Format(time.RFC3339)
		}
		resp.Payments = append(resp.Payments, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.metrics.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("load payment totals failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "totals are temporarily unavailable", "")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, errorResponse{Error: msg, Field: field})
}
