package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/logger"
)

type failingUniverse struct{}

func (failingUniverse) Name() string { return "broken" }
func (failingUniverse) Constituents(ctx context.Context) ([]models.Security, error) {
	return nil, errors.New("connection refused")
}

func TestResolvePreservesOrderAndDedups(t *testing.T) {
	src := &staticUniverse{secs: secs("B", "A", "B", "C", "A")}
	r := NewUniverseResolver(src, nil, 0, logger.Nop())

	got := r.Resolve(context.Background())

	want := []string{"B", "A", "C"}
	assert.Len(t, got, len(want))
	for i, sym := range want {
		assert.Equal(t, sym, got[i].Symbol)
	}
}

func TestResolveCapsAtMaxCount(t *testing.T) {
	src := &staticUniverse{secs: secs("A", "B", "C", "D", "E")}
	r := NewUniverseResolver(src, nil, 3, logger.Nop())

	got := r.Resolve(context.Background())
	assert.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Symbol)
}

func TestResolveFallsBackOnSourceFailure(t *testing.T) {
	r := NewUniverseResolver(failingUniverse{}, []string{"RELIANCE", "TCS"}, 0, logger.Nop())

	got := r.Resolve(context.Background())

	assert.Len(t, got, 2)
	assert.Equal(t, "RELIANCE", got[0].Symbol)
	assert.Equal(t, "NSE", got[0].Exchange)
}

func TestResolveNilSourceUsesFallback(t *testing.T) {
	r := NewUniverseResolver(nil, []string{"INFY"}, 0, logger.Nop())

	got := r.Resolve(context.Background())
	assert.Len(t, got, 1)
	assert.Equal(t, "INFY", got[0].Symbol)
}

func TestResolveSkipsBlankSymbols(t *testing.T) {
	src := &staticUniverse{secs: []models.Security{{Symbol: ""}, {Symbol: "A"}}}
	r := NewUniverseResolver(src, nil, 0, logger.Nop())

	got := r.Resolve(context.Background())
	assert.Len(t, got, 1)
}
