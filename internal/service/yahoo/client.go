// Package yahoo implements the Yahoo Finance chart-API adapter: vendor REST
// fallback for spot quotes and the daily close series feeding the indicator
// engine.
package yahoo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds the Yahoo adapter configuration.
type Config struct {
	BaseURL string
	// Suffix qualifies symbols for the exchange, e.g. ".NS" for NSE listings.
	Suffix  string
	Timeout time.Duration
}

// Client is the Yahoo adapter. Stateless per call; the underlying HTTP
// connection pool is shared across concurrent calls.
type Client struct {
	cfg  Config
	http *xhttp.Client
	log  *logger.Logger
}

// New creates a Yahoo adapter.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithUserAgent("stockpulse/1.0"),
		),
		log: log,
	}
}

// Name implements the provider interfaces.
func (c *Client) Name() string { return "yahoo" }

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		RegularMarketPrice *float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) chart(ctx context.Context, sec models.Security, rng string) (*chartResult, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + "/v8/finance/chart/" + sec.Symbol + c.cfg.Suffix,
		QueryParams: map[string][]string{
			"range":    {rng},
			"interval": {"1d"},
		},
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, models.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// unknown symbol: Yahoo's way of saying "no data"
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, models.ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, models.FaultFromStatus(resp.StatusCode)
	}

	var out chartResponse
	if err := jsonDecode(resp.Body, &out); err != nil {
		c.log.Warn("yahoo malformed payload",
			logger.String("symbol", sec.Symbol),
			logger.Error(err),
		)
		return nil, models.MalformedFault(err)
	}
	if out.Chart.Error != nil || len(out.Chart.Result) == 0 {
		return nil, models.ErrNoData
	}
	return &out.Chart.Result[0], nil
}

// Quote implements repository.QuoteProvider from the one-day chart.
func (c *Client) Quote(ctx context.Context, sec models.Security) (models.Quote, error) {
	res, err := c.chart(ctx, sec, "1d")
	if err != nil {
		return models.Quote{}, err
	}

	q := models.Quote{Price: res.Meta.RegularMarketPrice}
	if len(res.Indicators.Quote) > 0 {
		bars := res.Indicators.Quote[0]
		q.DayHigh = lastNonNil(bars.High)
		q.DayLow = lastNonNil(bars.Low)
		q.Volume = lastNonNil(bars.Volume)
	}
	if q.IsEmpty() {
		return models.Quote{}, models.ErrNoData
	}
	return q, nil
}

// History implements repository.HistoryProvider: daily closes over the
// trailing lookback, oldest first, rows with null closes dropped.
func (c *Client) History(ctx context.Context, sec models.Security, lookbackDays int) ([]models.PriceBar, error) {
	res, err := c.chart(ctx, sec, rangeFor(lookbackDays))
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, models.ErrNoData
	}

	quote := res.Indicators.Quote[0]
	bars := make([]models.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	return bars, nil
}

func jsonDecode(r io.Reader, dest interface{}) error {
	return json.NewDecoder(r).Decode(dest)
}

func rangeFor(lookbackDays int) string {
	switch {
	case lookbackDays <= 5:
		return "5d"
	case lookbackDays <= 31:
		return "1mo"
	case lookbackDays <= 186:
		return "6mo"
	default:
		return "1y"
	}
}

func lastNonNil(vals []*float64) *float64 {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != nil {
			return vals[i]
		}
	}
	return nil
}
