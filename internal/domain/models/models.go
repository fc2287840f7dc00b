package models

import "time"

// Security identifies one listed instrument, exchange-qualified.
// Immutable once the universe is resolved for a run.
type Security struct {
	Symbol   string
	Exchange string
}

// PriceBar is one day of closing data. Series are chronological, oldest first.
type PriceBar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// Article is one news item returned by a news provider.
type Article struct {
	Title       string
	Description string
	URL         string
	PublishedAt time.Time
}

// Quote holds the spot fields a quote provider may return.
// Pointer fields: a provider is free to omit any of them.
type Quote struct {
	Price   *float64
	DayHigh *float64
	DayLow  *float64
	Volume  *float64
}

// IsEmpty reports whether the provider returned no usable field at all.
func (q Quote) IsEmpty() bool {
	return q.Price == nil && q.DayHigh == nil && q.DayLow == nil && q.Volume == nil
}

// DerivativeQuote holds last-traded prices for the nearest futures contract
// and the nearest call/put options of a security.
type DerivativeQuote struct {
	FuturesPrice *float64
	CallPrice    *float64
	PutPrice     *float64
}

// IsEmpty reports whether no derivative instrument had a price.
func (d DerivativeQuote) IsEmpty() bool {
	return d.FuturesPrice == nil && d.CallPrice == nil && d.PutPrice == nil
}

// Trend classifies a moving-average or options signal.
type Trend string

const (
	TrendPositive Trend = "Positive"
	TrendNegative Trend = "Negative"
	TrendNeutral  Trend = "Neutral" // options trend only
)

// Recommendation is the derived trading signal. Never provider-supplied.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationHold Recommendation = "HOLD"
	RecommendationSell Recommendation = "SELL"
)

// Float returns a pointer to v. Convenience for building nullable fields.
func Float(v float64) *float64 { return &v }
