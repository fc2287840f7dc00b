package nse

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"
)

type derivativeResponse struct {
	Stocks []derivativeEntry `json:"stocks"`
}

type derivativeEntry struct {
	Metadata struct {
		InstrumentType string   `json:"instrumentType"`
		OptionType     string   `json:"optionType"`
		ExpiryDate     string   `json:"expiryDate"`
		LastPrice      *float64 `json:"lastPrice"`
	} `json:"metadata"`
}

// Derivatives implements repository.DerivativesProvider. Picks the
// nearest-expiry futures contract and the nearest call/put; securities
// without an F&O listing come back as the explicit empty outcome.
func (c *Client) Derivatives(ctx context.Context, sec models.Security) (models.DerivativeQuote, error) {
	var out derivativeResponse
	err := c.getJSON(ctx, "/api/quote-derivative", map[string][]string{
		"symbol": {sec.Symbol},
	}, &out)
	if err != nil {
		return models.DerivativeQuote{}, err
	}
	if len(out.Stocks) == 0 {
		return models.DerivativeQuote{}, models.ErrNoData
	}

	var (
		d          models.DerivativeQuote
		futExpiry  time.Time
		callExpiry time.Time
		putExpiry  time.Time
	)
	for _, s := range out.Stocks {
		md := s.Metadata
		if md.LastPrice == nil {
			continue
		}
		expiry, ok := util.ParseNSEDate(md.ExpiryDate)
		if !ok {
			continue
		}
		switch {
		case md.InstrumentType == "Stock Futures":
			if d.FuturesPrice == nil || expiry.Before(futExpiry) {
				d.FuturesPrice, futExpiry = md.LastPrice, expiry
			}
		case md.InstrumentType == "Stock Options" && md.OptionType == "Call":
			if d.CallPrice == nil || expiry.Before(callExpiry) {
				d.CallPrice, callExpiry = md.LastPrice, expiry
			}
		case md.InstrumentType == "Stock Options" && md.OptionType == "Put":
			if d.PutPrice == nil || expiry.Before(putExpiry) {
				d.PutPrice, putExpiry = md.LastPrice, expiry
			}
		}
	}

	if d.IsEmpty() {
		return models.DerivativeQuote{}, models.ErrNoData
	}
	return d, nil
}
