package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/logger"
)

// Pipeline drives one full aggregation run: resolve the universe, gather and
// finalize a record per security on a bounded worker pool, then deliver the
// batch to the configured backend and the snapshot.
type Pipeline struct {
	universe    *UniverseResolver
	orch        *Orchestrator
	recommender *Recommender
	snapshot    *Snapshot
	sink        drepo.RecordSink
	publisher   drepo.RecordPublisher
	metrics     drepo.Metrics
	log         *logger.Logger
	workers     int

	// OnRecord, when set, is invoked with each finalized record in universe
	// order after the run completes. Used by the websocket broadcast hub.
	OnRecord func(runID string, rec *models.StockRecord)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithSink routes finalized batches to a persistent store.
func WithSink(s drepo.RecordSink) PipelineOption {
	return func(p *Pipeline) { p.sink = s }
}

// WithPublisher routes finalized records to a message bus.
func WithPublisher(pub drepo.RecordPublisher) PipelineOption {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithWorkers bounds pool concurrency.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewPipeline creates a pipeline.
func NewPipeline(
	universe *UniverseResolver,
	orch *Orchestrator,
	recommender *Recommender,
	snapshot *Snapshot,
	metrics drepo.Metrics,
	log *logger.Logger,
	opts ...PipelineOption,
) *Pipeline {
	p := &Pipeline{
		universe:    universe,
		orch:        orch,
		recommender: recommender,
		snapshot:    snapshot,
		metrics:     metrics,
		log:         log,
		workers:     8,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one aggregation run and returns the finalized records in
// universe order. Every security yields exactly one record; a panicking
// gather is contained to that security's slot.
func (p *Pipeline) Run(ctx context.Context) ([]*models.StockRecord, error) {
	start := time.Now()
	runID := start.UTC().Format("20060102T150405Z")

	universe := p.universe.Resolve(ctx)
	if len(universe) == 0 {
		return nil, fmt.Errorf("run %s: empty universe", runID)
	}
	p.log.Info("run started",
		logger.String("run_id", runID),
		logger.Int("securities", len(universe)),
		logger.Int("workers", p.workers),
	)

	records := make([]*models.StockRecord, len(universe))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, sec := range universe {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, sec models.Security) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = p.gatherOne(ctx, sec)
		}(i, sec)
	}
	wg.Wait()

	for _, rec := range records {
		p.recommender.Recommend(rec)
	}

	p.snapshot.Replace(runID, records)
	p.deliver(ctx, runID, records)

	if p.OnRecord != nil {
		for _, rec := range records {
			p.OnRecord(runID, rec)
		}
	}

	elapsed := time.Since(start)
	p.metrics.RecordRun(len(records), elapsed.Seconds())
	p.log.Info("run finished",
		logger.String("run_id", runID),
		logger.Int("records", len(records)),
		logger.Duration("elapsed", elapsed),
	)
	return records, nil
}

// gatherOne contains any panic from a misbehaving adapter to the one
// security, degrading it to an all-null record.
func (p *Pipeline) gatherOne(ctx context.Context, sec models.Security) (rec *models.StockRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("gather panicked",
				logger.String("symbol", sec.Symbol),
				logger.Any("panic", r),
			)
			rec = models.NewStockRecord(sec.Symbol)
			rec.MarkGroupFailed(models.GroupQuote)
			rec.MarkGroupFailed(models.GroupHistory)
			rec.MarkGroupFailed(models.GroupDerivatives)
			rec.MarkGroupFailed(models.GroupNews)
		}
	}()

	t := time.Now()
	rec = p.orch.Gather(ctx, sec)
	p.metrics.RecordLatency("gather", time.Since(t).Seconds())
	return rec
}

// deliver fans the batch out to the configured backends. Delivery failure is
// logged, never fatal: the snapshot already holds the run.
func (p *Pipeline) deliver(ctx context.Context, runID string, records []*models.StockRecord) {
	if p.sink != nil {
		if err := p.sink.StoreBatch(ctx, runID, records); err != nil {
			p.log.Error("sink delivery failed",
				logger.String("run_id", runID),
				logger.Error(err),
			)
		}
	}
	if p.publisher != nil {
		if err := p.publisher.PublishBatch(ctx, runID, records); err != nil {
			p.log.Error("publish failed",
				logger.String("run_id", runID),
				logger.Error(err),
			)
		}
	}
}
