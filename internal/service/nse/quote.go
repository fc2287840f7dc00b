package nse

import (
	"context"

	"StockPulse/internal/domain/models"
)

type quoteResponse struct {
	PriceInfo *struct {
		LastPrice       *float64 `json:"lastPrice"`
		IntraDayHighLow struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		} `json:"intraDayHighLow"`
	} `json:"priceInfo"`
	SecurityWiseDP *struct {
		QuantityTraded *float64 `json:"quantityTraded"`
	} `json:"securityWiseDP"`
}

// Quote implements repository.QuoteProvider against the equity quote API.
func (c *Client) Quote(ctx context.Context, sec models.Security) (models.Quote, error) {
	var out quoteResponse
	err := c.getJSON(ctx, "/api/quote-equity", map[string][]string{
		"symbol": {sec.Symbol},
	}, &out)
	if err != nil {
		return models.Quote{}, err
	}
	if out.PriceInfo == nil {
		return models.Quote{}, models.ErrNoData
	}

	q := models.Quote{
		Price:   out.PriceInfo.LastPrice,
		DayHigh: out.PriceInfo.IntraDayHighLow.Max,
		DayLow:  out.PriceInfo.IntraDayHighLow.Min,
	}
	if out.SecurityWiseDP != nil {
		q.Volume = out.SecurityWiseDP.QuantityTraded
	}
	if q.IsEmpty() {
		return models.Quote{}, models.ErrNoData
	}
	return q, nil
}
