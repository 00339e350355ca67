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

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bullmoney/cryptopay-backend/internal/chain"
	"github.com/bullmoney/cryptopay-backend/internal/chain/bitcoin"
	"github.com/bullmoney/cryptopay-backend/internal/chain/esplora"
	"github.com/bullmoney/cryptopay-backend/internal/chain/evm"
	"github.com/bullmoney/cryptopay-backend/internal/chain/solana"
	"github.com/bullmoney/cryptopay-backend/internal/crypt"
	"github.com/bullmoney/cryptopay-backend/internal/metrics"
	"github.com/bullmoney/cryptopay-backend/internal/model"
	"github.com/bullmoney/cryptopay-backend/internal/notify"
	"github.com/bullmoney/cryptopay-backend/internal/service"
	"github.com/bullmoney/cryptopay-backend/internal/store/clickhouse"
	"github.com/bullmoney/cryptopay-backend/internal/wallet"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"PAYMENTS_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	EncryptionKey string `long:"encryption-key" env:"PAYMENT_ENCRYPTION_KEY" description:"hex-encoded 32-byte key for tx hash encryption"`
	MetricsAddr   string `long:"metrics-addr" env:"WATCHER_METRICS_ADDR" description:"address for the metrics server" default:":2113"`

	PollInterval     time.Duration `long:"poll-interval" env:"WATCHER_POLL_INTERVAL" description:"delay between verification cycles" default:"30s"`
	HTTPTimeout      time.Duration `long:"http-timeout" env:"WATCHER_HTTP_TIMEOUT" description:"HTTP timeout for provider requests" default:"10s"`
	ExpiryWindow     time.Duration `long:"expiry-window" env:"WATCHER_EXPIRY_WINDOW" description:"how long a pending payment may stay unseen on-chain before expiring" default:"2h"`
	BatchLimit       int           `long:"batch-limit" env:"WATCHER_BATCH_LIMIT" description:"max payments fetched per verification cycle" default:"50"`
	WorkerCount      int           `long:"worker-count" env:"WATCHER_WORKER_COUNT" description:"concurrent payment checks per cycle" default:"8"`
	MaxCheckAttempts uint32        `long:"max-check-attempts" env:"WATCHER_MAX_CHECK_ATTEMPTS" description:"consecutive failed checks before a payment goes to manual review" default:"5"`
	UnderpayRatio    string        `long:"underpay-ratio" env:"WATCHER_UNDERPAY_RATIO" description:"received/expected ratio below which a payment is underpaid" default:"0.97"`

	EsploraURL string `long:"esplora-url" env:"WATCHER_ESPLORA_URL" description:"Esplora REST API base URL" default:"https://blockstream.info/api"`
	EsploraRPS int    `long:"esplora-rps" env:"WATCHER_ESPLORA_RPS" description:"Esplora request rate limit" default:"4"`

	BitcoinRPCURL      string `long:"bitcoin-rpc-url" env:"WATCHER_BITCOIN_RPC_URL" description:"optional bitcoind RPC host for cross-checking (host:port)"`
	BitcoinRPCUser     string `long:"bitcoin-rpc-user" env:"WATCHER_BITCOIN_RPC_USER" description:"bitcoind RPC username"`
	BitcoinRPCPassword string `long:"bitcoin-rpc-password" env:"WATCHER_BITCOIN_RPC_PASSWORD" description:"bitcoind RPC password"`
	BitcoinRPS         int    `long:"bitcoin-rps" env:"WATCHER_BITCOIN_RPS" description:"bitcoind request rate limit" default:"8"`

	EthereumRPCURL string `long:"ethereum-rpc-url" env:"WATCHER_ETHEREUM_RPC_URL" description:"Ethereum JSON-RPC endpoint" default:"https://eth.llamarpc.com"`
	BSCRPCURL      string `long:"bsc-rpc-url" env:"WATCHER_BSC_RPC_URL" description:"BNB Smart Chain JSON-RPC endpoint" default:"https://bsc-dataseed.bnbchain.org"`
	BaseRPCURL     string `long:"base-rpc-url" env:"WATCHER_BASE_RPC_URL" description:"Base JSON-RPC endpoint" default:"https://mainnet.base.org"`
	EVMRPS         int    `long:"evm-rps" env:"WATCHER_EVM_RPS" description:"EVM request rate limit" default:"8"`

	SolanaRPCURL string `long:"solana-rpc-url" env:"WATCHER_SOLANA_RPC_URL" description:"Solana JSON-RPC endpoint" default:"https://api.mainnet-beta.solana.com"`
	SolanaRPS    int    `long:"solana-rps" env:"WATCHER_SOLANA_RPS" description:"Solana request rate limit" default:"4"`

	WebhookURL     string        `long:"webhook-url" env:"WATCHER_WEBHOOK_URL" description:"optional webhook for payment status notifications"`
	WebhookTimeout time.Duration `long:"webhook-timeout" env:"WATCHER_WEBHOOK_TIMEOUT" description:"webhook delivery timeout" default:"10s"`
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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("confirmation watcher failed", zap.Error(err))
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

	wallets := wallet.Default()

	providers, cleanup, err := buildProviders(cfg, wallets, logger)
	if err != nil {
		return fmt.Errorf("init chain providers: %w", err)
	}
	defer cleanup()

	var notifier service.Notifier = notify.Nop{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout, metrics.NewNotifier())
	}

	watcherCfg, err := watcherConfig(cfg)
	if err != nil {
		return fmt.Errorf("build watcher config: %w", err)
	}

	watcher, err := service.NewConfirmationWatcher(
		repo, providers, wallets, cipher, notifier, metrics.NewWatcher(), logger, watcherCfg,
	)
	if err != nil {
		return fmt.Errorf("init watcher: %w", err)
	}

	logger.Info("starting confirmation watcher",
		zap.Duration("poll_interval", watcherCfg.PollInterval),
		zap.Int("batch_limit", watcherCfg.BatchLimit),
	)
	return watcher.Run(ctx)
}

// watcherConfig merges the flag values into the watcher tuning knobs.
func watcherConfig(cfg config) (service.WatcherConfig, error) {
	ratio, err := decimal.NewFromString(cfg.UnderpayRatio)
	if err != nil {
		return service.WatcherConfig{}, fmt.Errorf("parse underpay ratio: %w", err)
	}
	if ratio.LessThanOrEqual(decimal.Zero) || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return service.WatcherConfig{}, fmt.Errorf("underpay ratio %s outside (0, 1]", ratio)
	}

	wc := service.DefaultWatcherConfig()
	wc.PollInterval = cfg.PollInterval
	wc.CheckTimeout = cfg.HTTPTimeout
	wc.ExpiryWindow = cfg.ExpiryWindow
	wc.BatchLimit = cfg.BatchLimit
	wc.WorkerCount = cfg.WorkerCount
	wc.MaxCheckAttempts = cfg.MaxCheckAttempts
	wc.UnderpayRatio = ratio
	return wc, nil
}

// buildProviders wires one provider per supported coin and network. BTC gets a
// quorum of Esplora and bitcoind when a node is configured, Esplora alone
// otherwise.
func buildProviders(cfg config, wallets *wallet.Registry, logger *zap.Logger) (*chain.Registry, func(), error) {
	registry := chain.NewRegistry()
	cleanup := func() {}

	for _, w := range wallets.Wallets() {
		switch w.Coin {
		case model.BTC:
			var btcProvider chain.Provider = esplora.NewClient(
				cfg.EsploraURL, cfg.HTTPTimeout, cfg.EsploraRPS,
				metrics.NewChainProvider("esplora", w.Coin, w.Network),
			)
			if cfg.BitcoinRPCURL != "" {
				node, err := bitcoin.Dial(cfg.BitcoinRPCURL, cfg.BitcoinRPCUser, cfg.BitcoinRPCPassword)
				if err != nil {
					return nil, nil, fmt.Errorf("dial bitcoind: %w", err)
				}
				cleanup = func() {
					node.Shutdown()
					node.WaitForShutdown()
				}
				secondary := bitcoin.NewProvider(node, cfg.BitcoinRPS,
					metrics.NewChainProvider("bitcoind", w.Coin, w.Network))
				btcProvider = chain.NewQuorum(btcProvider, secondary, logger)
			}
			registry.Register(w.Coin, w.Network, btcProvider)

		case model.ETH, model.BNB, model.USDT, model.USDC:
			endpoint, err := evmEndpoint(cfg, w.Network)
			if err != nil {
				return nil, nil, err
			}
			registry.Register(w.Coin, w.Network, evm.NewClient(
				endpoint, cfg.HTTPTimeout, cfg.EVMRPS,
				metrics.NewChainProvider("evm", w.Coin, w.Network),
			))

		case model.SOL:
			registry.Register(w.Coin, w.Network, solana.NewProvider(
				solanarpc.New(cfg.SolanaRPCURL), cfg.SolanaRPS,
				metrics.NewChainProvider("solana", w.Coin, w.Network),
			))

		default:
			return nil, nil, fmt.Errorf("no provider for coin %s", w.Coin)
		}
	}

	return registry, cleanup, nil
}

// evmEndpoint maps an EVM network to its JSON-RPC endpoint.
func evmEndpoint(cfg config, network model.Network) (string, error) {
	switch network {
	case "Ethereum (ERC-20)":
		return cfg.EthereumRPCURL, nil
	case "BNB Smart Chain (BEP-20)":
		return cfg.BSCRPCURL, nil
	case "Base (L2)":
		return cfg.BaseRPCURL, nil
	}
	return "", fmt.Errorf("no JSON-RPC endpoint for network %s", network)
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
