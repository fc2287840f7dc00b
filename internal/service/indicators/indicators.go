// Package indicators computes moving-average signals from daily close series.
package indicators

import (
	"github.com/markcheno/go-talib"

	"StockPulse/internal/domain/models"
)

// Engine computes short/long simple moving averages over a close series.
type Engine struct {
	short int
	long  int
}

// Result carries the computed averages and the crossover trend.
// An average is nil when the series is shorter than its window.
type Result struct {
	ShortMA *float64
	LongMA  *float64
	Trend   models.Trend
}

// New creates an indicator engine with the given window lengths.
func New(short, long int) *Engine {
	if short <= 0 {
		short = 9
	}
	if long <= 0 {
		long = 50
	}
	return &Engine{short: short, long: long}
}

// Compute evaluates both averages over bars (chronological, oldest first).
// Trend is Positive only when both windows are full and the short average
// sits above the long one; any shortfall reads as Negative.
func (e *Engine) Compute(bars []models.PriceBar) Result {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	res := Result{
		ShortMA: lastSMA(closes, e.short),
		LongMA:  lastSMA(closes, e.long),
		Trend:   models.TrendNegative,
	}
	if res.ShortMA != nil && res.LongMA != nil && *res.ShortMA > *res.LongMA {
		res.Trend = models.TrendPositive
	}
	return res
}

// lastSMA returns the most recent simple moving average over the given
// window, or nil when the series cannot fill it.
func lastSMA(closes []float64, window int) *float64 {
	if window <= 1 || len(closes) < window {
		return nil
	}
	sma := talib.Sma(closes, window)
	v := sma[len(sma)-1]
	return &v
}
