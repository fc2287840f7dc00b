package usecase

import (
	"context"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/logger"
)

// UniverseResolver resolves the set of securities a run covers: the live
// index constituents when the source works, a configured static list when
// it does not.
type UniverseResolver struct {
	source   drepo.UniverseSource
	fallback []string
	maxCount int
	log      *logger.Logger
}

// NewUniverseResolver creates a resolver. source may be nil, in which case
// the fallback list is the universe.
func NewUniverseResolver(source drepo.UniverseSource, fallback []string, maxCount int, log *logger.Logger) *UniverseResolver {
	return &UniverseResolver{source: source, fallback: fallback, maxCount: maxCount, log: log}
}

// Resolve returns the run universe: deduplicated, source order preserved,
// capped at maxCount. A failing source degrades to the fallback list rather
// than failing the run.
func (r *UniverseResolver) Resolve(ctx context.Context) []models.Security {
	if r.source != nil {
		secs, err := r.source.Constituents(ctx)
		if err != nil {
			r.log.Warn("universe source failed, using fallback",
				logger.String("source", r.source.Name()),
				logger.Error(err),
			)
		} else if len(secs) > 0 {
			return r.dedup(secs)
		}
	}

	secs := make([]models.Security, 0, len(r.fallback))
	for _, sym := range r.fallback {
		secs = append(secs, models.Security{Symbol: sym, Exchange: "NSE"})
	}
	return r.dedup(secs)
}

func (r *UniverseResolver) dedup(secs []models.Security) []models.Security {
	seen := make(map[string]struct{}, len(secs))
	out := make([]models.Security, 0, len(secs))
	for _, s := range secs {
		if s.Symbol == "" {
			continue
		}
		if _, ok := seen[s.Symbol]; ok {
			continue
		}
		seen[s.Symbol] = struct{}{}
		out = append(out, s)
		if r.maxCount > 0 && len(out) == r.maxCount {
			break
		}
	}
	return out
}
