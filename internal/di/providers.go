package di

import (
	"context"
	"fmt"
	"time"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/handler/ws"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/indicators"
	"StockPulse/internal/service/newsapi"
	"StockPulse/internal/service/nse"
	"StockPulse/internal/service/sentiment"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	pkgkafka "StockPulse/pkg/kafka"
	xlogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideNSEClient creates the NSE adapter.
func ProvideNSEClient(cfg *config.Config, log *xlogger.Logger) *nse.Client {
	return nse.New(nse.Config{
		BaseURL:   cfg.Providers.NSE.BaseURL,
		HomeURL:   cfg.Providers.NSE.HomeURL,
		UserAgent: cfg.Providers.NSE.UserAgent,
		Timeout:   cfg.Providers.NSE.Timeout,
		Index:     cfg.Universe.Index,
	}, log)
}

// ProvideYahooClient creates the Yahoo adapter.
func ProvideYahooClient(cfg *config.Config, log *xlogger.Logger) *yahoo.Client {
	return yahoo.New(yahoo.Config{
		BaseURL: cfg.Providers.Yahoo.BaseURL,
		Suffix:  cfg.Providers.Yahoo.Suffix,
		Timeout: cfg.Providers.Yahoo.Timeout,
	}, log)
}

// ProvideNewsAPIClient creates the NewsAPI adapter.
func ProvideNewsAPIClient(cfg *config.Config, log *xlogger.Logger) *newsapi.Client {
	return newsapi.New(newsapi.Config{
		BaseURL:  cfg.Providers.NewsAPI.BaseURL,
		APIKey:   cfg.Providers.NewsAPI.APIKey,
		Keywords: cfg.Providers.NewsAPI.Keywords,
		PageSize: cfg.Sentiment.MaxArticles,
		Timeout:  cfg.Providers.NewsAPI.Timeout,
	}, log)
}

// ProvideAdapters assembles the priority-ordered provider lists from
// configuration. Unknown names are skipped: the lists degrade, the run
// still happens.
func ProvideAdapters(cfg *config.Config, nseC *nse.Client, yahooC *yahoo.Client, newsC *newsapi.Client) usecase.Adapters {
	quotes := map[string]drepo.QuoteProvider{
		nseC.Name():   nseC,
		yahooC.Name(): yahooC,
	}
	histories := map[string]drepo.HistoryProvider{
		yahooC.Name(): yahooC,
	}
	derivatives := map[string]drepo.DerivativesProvider{
		nseC.Name(): nseC,
	}
	news := map[string]drepo.NewsProvider{
		newsC.Name(): newsC,
	}

	var a usecase.Adapters
	for _, name := range cfg.Providers.Priority.Quote {
		if p, ok := quotes[name]; ok {
			a.Quote = append(a.Quote, p)
		}
	}
	for _, name := range cfg.Providers.Priority.History {
		if p, ok := histories[name]; ok {
			a.History = append(a.History, p)
		}
	}
	for _, name := range cfg.Providers.Priority.Derivatives {
		if p, ok := derivatives[name]; ok {
			a.Derivatives = append(a.Derivatives, p)
		}
	}
	for _, name := range cfg.Providers.Priority.News {
		if p, ok := news[name]; ok {
			a.News = append(a.News, p)
		}
	}
	return a
}

// ProvideUniverseResolver creates the universe resolver over the NSE index.
func ProvideUniverseResolver(cfg *config.Config, nseC *nse.Client, log *xlogger.Logger) *usecase.UniverseResolver {
	return usecase.NewUniverseResolver(nseC, cfg.Universe.Fallback, cfg.Universe.MaxCount, log)
}

// ProvideIndicators creates the moving-average engine.
func ProvideIndicators(cfg *config.Config) *indicators.Engine {
	return indicators.New(cfg.Indicators.ShortWindow, cfg.Indicators.LongWindow)
}

// ProvideSentiment creates the sentiment engine.
func ProvideSentiment(cfg *config.Config) *sentiment.Engine {
	return sentiment.New(cfg.Sentiment.MaxArticles)
}

// ProvideCache creates the configured cache backend, or nil for "none".
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		c, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Backends bundles the optional delivery backends selected by
// cfg.Backend.Type. At most one of Sink/Publisher is non-nil.
type Backends struct {
	Sink      drepo.RecordSink
	Publisher drepo.RecordPublisher
	CH        *pkgch.Client
}

// ProvideBackends constructs the configured delivery backend.
func ProvideBackends(cfg *config.Config) (*Backends, error) {
	switch cfg.Backend.Type {
	case "", "none":
		return &Backends{}, nil

	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.RecordSchema); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return &Backends{
			Sink: internalrepo.NewClickHouseRecordSink(client.DB(), "stock_records"),
			CH:   client,
		}, nil

	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
			pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
			pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
			pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
			pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		return &Backends{
			Publisher: internalrepo.NewKafkaRecordPublisher(producer, cfg.Kafka.Topic),
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
}

// ProvideOrchestrator creates the per-security gather orchestrator.
func ProvideOrchestrator(
	cfg *config.Config,
	adapters usecase.Adapters,
	ind *indicators.Engine,
	sent *sentiment.Engine,
	cacheSvc pkgcache.Service,
	metrics drepo.Metrics,
	log *xlogger.Logger,
) *usecase.Orchestrator {
	opts := []usecase.OrchestratorOption{
		usecase.WithRateLimit(usecase.RateLimitConfig{
			Capacity:  cfg.Providers.RateLimit.Capacity,
			RefillPer: cfg.Providers.RateLimit.RefillPer,
		}),
		usecase.WithRetryBackoff(cfg.Pipeline.RetryBackoff),
		usecase.WithLookback(cfg.Indicators.LookbackDays),
		usecase.WithMaxArticles(cfg.Sentiment.MaxArticles),
	}
	if cacheSvc != nil {
		opts = append(opts, usecase.WithCache(cacheSvc, cfg.Cache.TTL))
	}
	return usecase.NewOrchestrator(adapters, ind, sent, metrics, log, opts...)
}

// ProvideRecommender creates the recommendation mapper.
func ProvideRecommender(cfg *config.Config) *usecase.Recommender {
	return usecase.NewRecommender(cfg.Recommendation.BuyThreshold, cfg.Recommendation.SellThreshold)
}

// ProvideSnapshot creates the latest-run store.
func ProvideSnapshot() *usecase.Snapshot {
	return usecase.NewSnapshot()
}

// ProvidePipeline creates the run pipeline with the configured backend.
func ProvidePipeline(
	cfg *config.Config,
	universe *usecase.UniverseResolver,
	orch *usecase.Orchestrator,
	rec *usecase.Recommender,
	snap *usecase.Snapshot,
	backends *Backends,
	metrics drepo.Metrics,
	log *xlogger.Logger,
) *usecase.Pipeline {
	opts := []usecase.PipelineOption{usecase.WithWorkers(cfg.Pipeline.Workers)}
	if backends.Sink != nil {
		opts = append(opts, usecase.WithSink(backends.Sink))
	}
	if backends.Publisher != nil {
		opts = append(opts, usecase.WithPublisher(backends.Publisher))
	}
	return usecase.NewPipeline(universe, orch, rec, snap, metrics, log, opts...)
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(log *xlogger.Logger) *ws.Hub {
	return ws.NewHub(log)
}

// ProvideStocksHandler creates the dataset HTTP handler.
func ProvideStocksHandler(log *xlogger.Logger, snap *usecase.Snapshot, backends *Backends) *api.StocksHandler {
	return api.NewStocksHandler(log, snap, backends.Sink)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *xlogger.Logger,
	pipeline *usecase.Pipeline,
	handler *api.StocksHandler,
	hub *ws.Hub,
	backends *Backends,
	cacheSvc pkgcache.Service,
) *server.App {
	pipeline.OnRecord = hub.Broadcast
	return server.New(cfg, log, pipeline, handler, hub, server.Resources{
		Sink:      backends.Sink,
		Publisher: backends.Publisher,
		CH:        backends.CH,
		Cache:     cacheSvc,
	})
}
