package repository

import (
	"context"

	"StockPulse/internal/domain/models"
)

// Capability interfaces for external data sources. One concrete adapter per
// provider; the orchestrator selects among them by priority-ordered
// configuration, never by editing the orchestrator itself.

// QuoteProvider returns spot quote fields for a security.
type QuoteProvider interface {
	Name() string
	Quote(ctx context.Context, sec models.Security) (models.Quote, error)
}

// HistoryProvider returns a daily close series over a trailing lookback.
type HistoryProvider interface {
	Name() string
	History(ctx context.Context, sec models.Security, lookbackDays int) ([]models.PriceBar, error)
}

// DerivativesProvider returns futures/options last prices for a security.
type DerivativesProvider interface {
	Name() string
	Derivatives(ctx context.Context, sec models.Security) (models.DerivativeQuote, error)
}

// NewsProvider returns up to limit most-relevant articles for a security.
type NewsProvider interface {
	Name() string
	Articles(ctx context.Context, sec models.Security, limit int) ([]models.Article, error)
}

// UniverseSource returns the constituents of a configured index, in the
// provider's order. Failure degrades to the static fallback list.
type UniverseSource interface {
	Name() string
	Constituents(ctx context.Context) ([]models.Security, error)
}

// RecordSink persists finalized records of a run.
type RecordSink interface {
	StoreBatch(ctx context.Context, runID string, records []*models.StockRecord) error
	Health(ctx context.Context) error
	Close() error
}

// RecordPublisher emits finalized records to a message bus.
type RecordPublisher interface {
	Publish(ctx context.Context, runID string, rec *models.StockRecord) error
	PublishBatch(ctx context.Context, runID string, records []*models.StockRecord) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordProviderError(provider, kind string)
	RecordGroupResult(group, source string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordRun(records int, seconds float64)
}
