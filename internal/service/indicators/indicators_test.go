package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockPulse/internal/domain/models"
)

func bars(closes ...float64) []models.PriceBar {
	out := make([]models.PriceBar, len(closes))
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = models.PriceBar{Date: day.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestComputeShortWindowOnly(t *testing.T) {
	e := New(3, 10)

	// 5 bars: short window fills, long does not
	res := e.Compute(bars(10, 11, 12, 13, 14))

	assert.NotNil(t, res.ShortMA)
	assert.InDelta(t, 13.0, *res.ShortMA, 1e-9) // mean of 12,13,14
	assert.Nil(t, res.LongMA)
	assert.Equal(t, models.TrendNegative, res.Trend)
}

func TestComputeBothWindows(t *testing.T) {
	e := New(2, 4)

	res := e.Compute(bars(10, 10, 10, 20, 30))

	assert.NotNil(t, res.ShortMA)
	assert.NotNil(t, res.LongMA)
	assert.InDelta(t, 25.0, *res.ShortMA, 1e-9)  // mean of 20,30
	assert.InDelta(t, 17.5, *res.LongMA, 1e-9)   // mean of 10,10,20,30
	assert.Equal(t, models.TrendPositive, res.Trend)
}

func TestComputeShortBelowLongIsNegative(t *testing.T) {
	e := New(2, 4)

	res := e.Compute(bars(30, 20, 10, 5, 1))

	assert.NotNil(t, res.ShortMA)
	assert.NotNil(t, res.LongMA)
	assert.Equal(t, models.TrendNegative, res.Trend)
}

func TestComputeEqualAveragesIsNegative(t *testing.T) {
	e := New(2, 4)

	res := e.Compute(bars(10, 10, 10, 10))

	assert.Equal(t, models.TrendNegative, res.Trend)
}

func TestComputeEmptySeries(t *testing.T) {
	e := New(9, 50)

	res := e.Compute(nil)

	assert.Nil(t, res.ShortMA)
	assert.Nil(t, res.LongMA)
	assert.Equal(t, models.TrendNegative, res.Trend)
}

func TestTrendMonotonicInRecentCloses(t *testing.T) {
	e := New(2, 4)

	// rising closes keep the short average above the long one
	rising := e.Compute(bars(1, 2, 3, 10, 20))
	falling := e.Compute(bars(20, 10, 3, 2, 1))

	assert.Equal(t, models.TrendPositive, rising.Trend)
	assert.Equal(t, models.TrendNegative, falling.Trend)
}
