package di

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"CreditPull/internal/adapters/allowlist"
	"CreditPull/internal/adapters/banking"
	"CreditPull/internal/adapters/bullanetwork"
	"CreditPull/internal/adapters/lendingpool"
	"CreditPull/internal/adapters/requestnetwork"
	"CreditPull/internal/adapters/superfluid"
	"CreditPull/internal/adapters/wallet"
	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/internal/handler/api"
	internalrepo "CreditPull/internal/repository"
	"CreditPull/internal/service/allowlistapi"
	"CreditPull/internal/service/bankapi"
	"CreditPull/internal/service/bullanet"
	"CreditPull/internal/service/chainrpc"
	"CreditPull/internal/service/etherscan"
	"CreditPull/internal/service/requestnet"
	"CreditPull/internal/service/superfluidnet"
	"CreditPull/internal/usecase"
	"CreditPull/pkg/cache"
	"CreditPull/pkg/config"
	xhttp "CreditPull/pkg/http"
	pkgkafka "CreditPull/pkg/kafka"
	applogger "CreditPull/pkg/logger"
	"CreditPull/pkg/metrics"
	"CreditPull/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideChain resolves the configured chain name.
func ProvideChain(cfg *config.Config) (models.Chain, error) {
	return models.ChainFromName(cfg.Chain)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSignalPublisher creates the Kafka fetch-event publisher, or nil
// when Kafka is disabled.
func ProvideSignalPublisher(cfg *config.Config) (repository.SignalPublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideCacheService creates the Redis cache, or nil when caching is
// disabled.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("cache.redis.addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("cache.redis.addr port: %w", err)
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideTransactionSource creates the explorer transaction source for the
// configured chain, wrapped with a short-TTL cache when enabled.
func ProvideTransactionSource(cfg *config.Config, c cache.Service, l *applogger.Logger) repository.TransactionSource {
	var src repository.TransactionSource = etherscan.New(cfg.Explorer.BaseURL, cfg.Explorer.APIKey, cfg.Explorer.Timeout, l)
	if c != nil {
		src = internalrepo.NewCachedTransactionSource(src, c, cfg.Cache.TTL)
	}
	return src
}

// ProvideWalletAdapter creates the wallet adapter for the configured chain.
func ProvideWalletAdapter(chain models.Chain, txns repository.TransactionSource) (*wallet.Adapter, error) {
	return wallet.New(chain, txns)
}

// ProvideAdapters assembles the full adapter set. Adapters whose upstream is
// not configured are left out of the registry rather than registered broken.
func ProvideAdapters(
	cfg *config.Config,
	chain models.Chain,
	w *wallet.Adapter,
	c cache.Service,
	l *applogger.Logger,
) ([]adapter.Adapter, error) {
	adapters := []adapter.Adapter{w}

	// Second wallet adapter on Polygon so both ethereum_wallet and
	// polygon_wallet resolve regardless of the primary chain.
	if chain != models.ChainPolygon && cfg.PolygonExplorer.BaseURL != "" {
		var src repository.TransactionSource = etherscan.New(
			cfg.PolygonExplorer.BaseURL, cfg.PolygonExplorer.APIKey, cfg.PolygonExplorer.Timeout, l)
		if c != nil {
			src = internalrepo.NewCachedTransactionSource(src, c, cfg.Cache.TTL)
		}
		pw, err := wallet.New(models.ChainPolygon, src)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, pw)
	}

	if cfg.RequestNetwork.SubgraphURL != "" {
		rn := requestnet.New(cfg.RequestNetwork.SubgraphURL, cfg.RequestNetwork.InvoiceAPIURL, cfg.RequestNetwork.Timeout)
		adapters = append(adapters, requestnetwork.New(chain, rn, rn, w))
	}

	if cfg.BullaNetwork.SubgraphURL != "" {
		bn := bullanet.New(cfg.BullaNetwork.SubgraphURL, cfg.BullaNetwork.Timeout)
		adapters = append(adapters, bullanetwork.New(chain, bn, w))
	}

	if cfg.Superfluid.SubgraphURL != "" {
		sf := superfluidnet.New(cfg.Superfluid.SubgraphURL, cfg.Superfluid.Timeout)
		adapters = append(adapters, superfluid.New(sf))
	}

	if cfg.Allowlist.Endpoint != "" {
		al := allowlistapi.New(cfg.Allowlist.Endpoint, cfg.Allowlist.Timeout)
		adapters = append(adapters, allowlist.New(chain, al, l))
	}

	if cfg.Web3.ProviderURL != "" {
		rpc := chainrpc.New(cfg.Web3.ProviderURL, cfg.Web3.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web3.Timeout)
		err := rpc.VerifyNetwork(ctx, chain)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("web3 provider: %w", err)
		}
		adapters = append(adapters, lendingpool.New(lendingpool.NewPoolRegistry(), rpc))
	}

	if cfg.Bank.ClientID != "" {
		bk := bankapi.New(cfg.Bank.BaseURL, cfg.Bank.ClientID, cfg.Bank.ClientSecret, cfg.Bank.Timeout, l)
		adapters = append(adapters, banking.New(bk))
	}

	return adapters, nil
}

// ProvideRegistry builds the adapter registry with metrics and the optional
// fetch-event publisher.
func ProvideRegistry(
	l *applogger.Logger,
	adapters []adapter.Adapter,
	m repository.Metrics,
	p repository.SignalPublisher,
) (*usecase.Registry, error) {
	opts := []usecase.Option{usecase.WithMetrics(m)}
	if p != nil {
		opts = append(opts, usecase.WithPublisher(p))
	}
	return usecase.NewRegistry(l, adapters, opts...)
}

// ProvideHandler creates the HTTP handler serving the signal API.
func ProvideHandler(l *applogger.Logger, registry *usecase.Registry) xhttp.Handler {
	return api.NewSignalsEchoHandler(l, registry)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	publisher repository.SignalPublisher,
) *server.App {
	return server.New(cfg, l, handler, publisher)
}
