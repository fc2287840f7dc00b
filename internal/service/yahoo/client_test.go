package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Suffix: ".NS"}, logger.Nop())
}

func TestQuoteFromChartMeta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"meta": {"regularMarketPrice": 2842.1},
			"timestamp": [1700000000],
			"indicators": {"quote": [{
				"high": [2860.0], "low": [2815.5], "close": [2842.1], "volume": [3200000]
			}]}
		}], "error": null}}`))
	})

	q, err := c.Quote(context.Background(), models.Security{Symbol: "RELIANCE"})

	require.NoError(t, err)
	assert.Equal(t, 2842.1, *q.Price)
	assert.Equal(t, 2860.0, *q.DayHigh)
	assert.Equal(t, 2815.5, *q.DayLow)
	assert.Equal(t, 3200000.0, *q.Volume)
}

func TestQuoteSkipsTrailingNulls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"meta": {"regularMarketPrice": 10.0},
			"timestamp": [1, 2],
			"indicators": {"quote": [{
				"high": [11.0, null], "low": [9.0, null], "close": [10.0, null], "volume": [100, null]
			}]}
		}]}}`))
	})

	q, err := c.Quote(context.Background(), models.Security{Symbol: "TCS"})

	require.NoError(t, err)
	assert.Equal(t, 11.0, *q.DayHigh)
	assert.Equal(t, 100.0, *q.Volume)
}

func TestQuoteUnknownSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Quote(context.Background(), models.Security{Symbol: "NOPE"})
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestHistoryDropsNullCloses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"meta": {},
			"timestamp": [1700000000, 1700086400, 1700172800],
			"indicators": {"quote": [{
				"close": [100.0, null, 102.5],
				"volume": [1000, null, 1200]
			}]}
		}]}}`))
	})

	bars, err := c.History(context.Background(), models.Security{Symbol: "INFY"}, 365)

	require.NoError(t, err)
	require.Len(t, bars, 2, "null closes are holidays, not zeros")
	assert.Equal(t, 100.0, bars[0].Close)
	assert.Equal(t, 102.5, bars[1].Close)
	assert.Equal(t, 1200.0, bars[1].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestHistoryShortLookbackRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1700000000],
			"indicators": {"quote": [{"close": [10.0], "volume": [1]}]}
		}]}}`))
	})

	_, err := c.History(context.Background(), models.Security{Symbol: "SBIN"}, 5)
	require.NoError(t, err)
}

func TestHistoryChartError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	})

	_, err := c.History(context.Background(), models.Security{Symbol: "DELISTED"}, 365)
	assert.ErrorIs(t, err, models.ErrNoData)
}
