package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/crypt"
	"github.com/bullmoney/cryptopay-backend/internal/metrics"
	"github.com/bullmoney/cryptopay-backend/internal/service"
	"github.com/bullmoney/cryptopay-backend/internal/store/clickhouse"
	"github.com/bullmoney/cryptopay-backend/internal/transport"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

type config struct {
	Addr          string `long:"addr" env:"PAYMENTS_API_ADDR" description:"address for the payments API" default:":8080"`
	MetricsAddr   string `long:"metrics-addr" env:"PAYMENTS_API_METRICS_ADDR" description:"address for the metrics server" default:":2112"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"PAYMENTS_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	EncryptionKey string `long:"encryption-key" env:"PAYMENT_ENCRYPTION_KEY" description:"hex-encoded 32-byte key for tx hash encryption"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}
	if cfg.EncryptionKey == "" {
		logger.Fatal("payment encryption key is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("payments api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Error("failed to close repository", zap.Error(closeErr))
		}
	}()

	cipher, err := crypt.NewCipher(cfg.EncryptionKey)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	paymentsMetrics := metrics.NewPayments()
	payments, err := service.NewPaymentsService(repo, wallet.Default(), cipher, paymentsMetrics, logger)
	if err != nil {
		return fmt.Errorf("init payments service: %w", err)
	}
	aggregator, err := service.NewAggregator(repo, paymentsMetrics, logger)
	if err != nil {
		return fmt.Errorf("init aggregator: %w", err)
	}

	handler := transport.NewHandler(payments, aggregator, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(handler.Routes()),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting payments api", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
