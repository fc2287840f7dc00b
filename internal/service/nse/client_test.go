package nse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Index: "NIFTY 500"}, logger.Nop())
}

func withHome(apiHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "nsit", Value: "session"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/", apiHandler)
	return mux
}

func TestQuote(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quote-equity", r.URL.Path)
		assert.Equal(t, "RELIANCE", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"priceInfo": {
				"lastPrice": 2840.5,
				"intraDayHighLow": {"min": 2810.0, "max": 2861.2}
			},
			"securityWiseDP": {"quantityTraded": 4521000}
		}`))
	}))

	q, err := c.Quote(context.Background(), models.Security{Symbol: "RELIANCE"})

	require.NoError(t, err)
	assert.Equal(t, 2840.5, *q.Price)
	assert.Equal(t, 2861.2, *q.DayHigh)
	assert.Equal(t, 2810.0, *q.DayLow)
	assert.Equal(t, 4521000.0, *q.Volume)
}

func TestQuoteMissingPriceInfo(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.Quote(context.Background(), models.Security{Symbol: "XYZ"})
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestQuoteMalformedPayload(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>access denied</html>`))
	}))

	_, err := c.Quote(context.Background(), models.Security{Symbol: "RELIANCE"})

	var f *models.Fault
	require.True(t, errors.As(err, &f))
	assert.Equal(t, models.FaultMalformed, f.Kind)
}

func TestQuoteRateLimited(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.Quote(context.Background(), models.Security{Symbol: "RELIANCE"})
	assert.True(t, models.IsRateLimited(err))
}

func TestSessionBootstrappedOnce(t *testing.T) {
	var homeHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&homeHits, 1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/quote-equity", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"priceInfo": {"lastPrice": 1.0, "intraDayHighLow": {}}}`))
	})
	c := newTestClient(t, mux)

	for i := 0; i < 3; i++ {
		_, err := c.Quote(context.Background(), models.Security{Symbol: "TCS"})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&homeHits))
}

func TestConstituentsSortedByVolume(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NIFTY 500", r.URL.Query().Get("index"))
		_, _ = w.Write([]byte(`{"data": [
			{"symbol": "NIFTY 500", "priority": 1},
			{"symbol": "LOWVOL", "priority": 0, "totalTradedVolume": 100},
			{"symbol": "HIGHVOL", "priority": 0, "totalTradedVolume": 9000},
			{"symbol": "MIDVOL", "priority": 0, "totalTradedVolume": 500}
		]}`))
	}))

	secs, err := c.Constituents(context.Background())

	require.NoError(t, err)
	require.Len(t, secs, 3, "the index priority row is not a security")
	assert.Equal(t, "HIGHVOL", secs[0].Symbol)
	assert.Equal(t, "MIDVOL", secs[1].Symbol)
	assert.Equal(t, "LOWVOL", secs[2].Symbol)
	assert.Equal(t, "NSE", secs[0].Exchange)
}

func TestDerivativesNearestExpiry(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quote-derivative", r.URL.Path)
		_, _ = w.Write([]byte(`{"stocks": [
			{"metadata": {"instrumentType": "Stock Futures", "expiryDate": "24-Apr-2025", "lastPrice": 110.0}},
			{"metadata": {"instrumentType": "Stock Futures", "expiryDate": "27-Mar-2025", "lastPrice": 100.0}},
			{"metadata": {"instrumentType": "Stock Options", "optionType": "Call", "expiryDate": "27-Mar-2025", "lastPrice": 12.5}},
			{"metadata": {"instrumentType": "Stock Options", "optionType": "Put", "expiryDate": "27-Mar-2025", "lastPrice": 8.25}}
		]}`))
	}))

	d, err := c.Derivatives(context.Background(), models.Security{Symbol: "RELIANCE"})

	require.NoError(t, err)
	assert.Equal(t, 100.0, *d.FuturesPrice, "nearest expiry wins")
	assert.Equal(t, 12.5, *d.CallPrice)
	assert.Equal(t, 8.25, *d.PutPrice)
}

func TestDerivativesNoListing(t *testing.T) {
	c := newTestClient(t, withHome(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stocks": []}`))
	}))

	_, err := c.Derivatives(context.Background(), models.Security{Symbol: "SMALLCAP"})
	assert.ErrorIs(t, err, models.ErrNoData)
}
