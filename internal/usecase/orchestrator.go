package usecase

import (
	"context"
	"errors"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/indicators"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/service/sentiment"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/logger"
)

// Adapters groups the priority-ordered provider lists the orchestrator
// walks per field-group. Order is configuration, set once at wiring time.
type Adapters struct {
	Quote       []drepo.QuoteProvider
	History     []drepo.HistoryProvider
	Derivatives []drepo.DerivativesProvider
	News        []drepo.NewsProvider
}

// RateLimitConfig is the shared per-provider token bucket sizing.
type RateLimitConfig struct {
	Capacity  float64
	RefillPer float64
}

// Orchestrator builds one reconciled StockRecord per security. For each
// field-group it walks the configured provider list in priority order,
// merging partial results first-writer-wins until the group is complete or
// the list is exhausted. Provider faults never escape: they degrade the
// record to null fields and mark the group.
type Orchestrator struct {
	adapters     Adapters
	indicators   *indicators.Engine
	sentiment    *sentiment.Engine
	limiter      *ratelimit.Limiter
	rateLimit    RateLimitConfig
	cache        cache.Service
	cacheTTL     time.Duration
	metrics      drepo.Metrics
	log          *logger.Logger
	lookbackDays int
	maxArticles  int
	retryBackoff time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithCache enables the read-through cache in front of history and news
// calls, the two payloads stable enough within a run interval to reuse.
func WithCache(c cache.Service, ttl time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

// WithRateLimit sets the per-provider token bucket.
func WithRateLimit(rl RateLimitConfig) OrchestratorOption {
	return func(o *Orchestrator) { o.rateLimit = rl }
}

// WithRetryBackoff sets the pause before the single retry of a retryable
// transport fault.
func WithRetryBackoff(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.retryBackoff = d }
}

// WithLookback sets the history lookback window in days.
func WithLookback(days int) OrchestratorOption {
	return func(o *Orchestrator) { o.lookbackDays = days }
}

// WithMaxArticles caps the number of articles fetched per security.
func WithMaxArticles(n int) OrchestratorOption {
	return func(o *Orchestrator) { o.maxArticles = n }
}

// NewOrchestrator creates an orchestrator over the given adapter lists and
// derivation engines.
func NewOrchestrator(
	adapters Adapters,
	ind *indicators.Engine,
	sent *sentiment.Engine,
	metrics drepo.Metrics,
	log *logger.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		adapters:     adapters,
		indicators:   ind,
		sentiment:    sent,
		limiter:      ratelimit.New(),
		rateLimit:    RateLimitConfig{Capacity: 5, RefillPer: 2},
		metrics:      metrics,
		log:          log,
		lookbackDays: 365,
		maxArticles:  10,
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Gather assembles the record for one security. It always returns a record;
// total provider failure yields one with every data field null and every
// group marked failed.
func (o *Orchestrator) Gather(ctx context.Context, sec models.Security) *models.StockRecord {
	rec := models.NewStockRecord(sec.Symbol)

	o.gatherQuote(ctx, sec, rec)
	o.gatherHistory(ctx, sec, rec)
	o.gatherDerivatives(ctx, sec, rec)
	o.gatherNews(ctx, sec, rec)

	return rec
}

func (o *Orchestrator) gatherQuote(ctx context.Context, sec models.Security, rec *models.StockRecord) {
	merged := false
	for _, p := range o.adapters.Quote {
		q, err := o.callQuote(ctx, p, sec)
		if err != nil {
			o.noteFault(p.Name(), models.GroupQuote, sec.Symbol, err)
			continue
		}
		rec.MergeQuote(q, p.Name())
		o.metrics.RecordGroupResult(models.GroupQuote, p.Name())
		merged = true
		if rec.QuoteComplete() {
			break
		}
	}
	if !merged {
		rec.MarkGroupFailed(models.GroupQuote)
	}
	if rec.Price != nil {
		o.metrics.RecordLastPrice(sec.Symbol, *rec.Price)
	}
}

func (o *Orchestrator) gatherHistory(ctx context.Context, sec models.Security, rec *models.StockRecord) {
	for _, p := range o.adapters.History {
		bars, err := o.callHistory(ctx, p, sec)
		if err != nil {
			o.noteFault(p.Name(), models.GroupHistory, sec.Symbol, err)
			continue
		}
		if len(bars) == 0 {
			continue
		}
		res := o.indicators.Compute(bars)
		rec.SetIndicators(res.ShortMA, res.LongMA, res.Trend, p.Name())
		o.metrics.RecordGroupResult(models.GroupHistory, p.Name())
		return
	}
	rec.MarkGroupFailed(models.GroupHistory)
}

func (o *Orchestrator) gatherDerivatives(ctx context.Context, sec models.Security, rec *models.StockRecord) {
	merged := false
	source := ""
	for _, p := range o.adapters.Derivatives {
		d, err := o.callDerivatives(ctx, p, sec)
		if err != nil {
			o.noteFault(p.Name(), models.GroupDerivatives, sec.Symbol, err)
			continue
		}
		rec.MergeDerivatives(d, p.Name())
		o.metrics.RecordGroupResult(models.GroupDerivatives, p.Name())
		merged = true
		if source == "" {
			source = p.Name()
		}
		if rec.DerivativesComplete() {
			break
		}
	}
	if !merged {
		rec.MarkGroupFailed(models.GroupDerivatives)
		return
	}
	rec.SetOptionsTrend(optionsTrend(rec), source)
}

func (o *Orchestrator) gatherNews(ctx context.Context, sec models.Security, rec *models.StockRecord) {
	for _, p := range o.adapters.News {
		articles, err := o.callNews(ctx, p, sec)
		if err != nil {
			o.noteFault(p.Name(), models.GroupNews, sec.Symbol, err)
			continue
		}
		if len(articles) == 0 {
			continue
		}
		rec.SetSentiment(o.sentiment.Score(articles), p.Name())
		o.metrics.RecordGroupResult(models.GroupNews, p.Name())
		return
	}
	rec.MarkGroupFailed(models.GroupNews)
}

// optionsTrend classifies the call/put balance. Positive when calls price
// above puts, Negative the other way, Neutral when equal or one side is
// missing.
func optionsTrend(rec *models.StockRecord) models.Trend {
	if rec.CallPrice == nil || rec.PutPrice == nil {
		return models.TrendNeutral
	}
	switch {
	case *rec.CallPrice > *rec.PutPrice:
		return models.TrendPositive
	case *rec.PutPrice > *rec.CallPrice:
		return models.TrendNegative
	default:
		return models.TrendNeutral
	}
}

// call wraps one provider invocation with rate limiting and a single retry
// on retryable transport faults. A rate-limited response is not retried:
// the next source in the priority list gets its chance instead.
func (o *Orchestrator) call(ctx context.Context, provider string, fn func() error) error {
	if err := o.limiter.Wait(ctx, provider, o.rateLimit.Capacity, o.rateLimit.RefillPer); err != nil {
		return err
	}
	err := fn()
	if err == nil || !models.IsRetryable(err) {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.retryBackoff):
	}
	if err := o.limiter.Wait(ctx, provider, o.rateLimit.Capacity, o.rateLimit.RefillPer); err != nil {
		return err
	}
	return fn()
}

func (o *Orchestrator) callQuote(ctx context.Context, p drepo.QuoteProvider, sec models.Security) (models.Quote, error) {
	var q models.Quote
	err := o.call(ctx, p.Name(), func() error {
		var err error
		q, err = p.Quote(ctx, sec)
		return err
	})
	return q, err
}

func (o *Orchestrator) callHistory(ctx context.Context, p drepo.HistoryProvider, sec models.Security) ([]models.PriceBar, error) {
	key := "history:" + p.Name() + ":" + sec.Symbol
	var bars []models.PriceBar
	if o.cacheGet(ctx, key, &bars) {
		return bars, nil
	}
	err := o.call(ctx, p.Name(), func() error {
		var err error
		bars, err = p.History(ctx, sec, o.lookbackDays)
		return err
	})
	if err == nil {
		o.cacheSet(ctx, key, bars)
	}
	return bars, err
}

func (o *Orchestrator) callDerivatives(ctx context.Context, p drepo.DerivativesProvider, sec models.Security) (models.DerivativeQuote, error) {
	var d models.DerivativeQuote
	err := o.call(ctx, p.Name(), func() error {
		var err error
		d, err = p.Derivatives(ctx, sec)
		return err
	})
	return d, err
}

func (o *Orchestrator) callNews(ctx context.Context, p drepo.NewsProvider, sec models.Security) ([]models.Article, error) {
	key := "news:" + p.Name() + ":" + sec.Symbol
	var articles []models.Article
	if o.cacheGet(ctx, key, &articles) {
		return articles, nil
	}
	err := o.call(ctx, p.Name(), func() error {
		var err error
		articles, err = p.Articles(ctx, sec, o.maxArticles)
		return err
	})
	if err == nil {
		o.cacheSet(ctx, key, articles)
	}
	return articles, err
}

func (o *Orchestrator) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if o.cache == nil {
		return false
	}
	err := o.cache.Get(ctx, key, dest)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			o.log.Debug("cache read failed", logger.String("key", key), logger.Error(err))
		}
		return false
	}
	return true
}

func (o *Orchestrator) cacheSet(ctx context.Context, key string, value interface{}) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Set(ctx, key, value, o.cacheTTL); err != nil {
		o.log.Debug("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func (o *Orchestrator) noteFault(provider, group, symbol string, err error) {
	kind := models.FaultKindOf(err)
	o.metrics.RecordProviderError(provider, kind)
	if models.IsNoData(err) {
		o.log.Debug("provider returned no data",
			logger.String("provider", provider),
			logger.String("group", group),
			logger.String("symbol", symbol),
		)
		return
	}
	o.log.Warn("provider call failed",
		logger.String("provider", provider),
		logger.String("group", group),
		logger.String("symbol", symbol),
		logger.String("kind", kind),
		logger.Error(err),
	)
}
