package models

// Provenance field keys. One entry per populated field, naming the source
// adapter that supplied it; group keys are marked SourceFailed when every
// configured source for that group came back empty or failed.
const (
	FieldPrice          = "price"
	FieldDayHigh        = "day_high"
	FieldDayLow         = "day_low"
	FieldVolume         = "volume"
	FieldShortMA        = "short_ma"
	FieldLongMA         = "long_ma"
	FieldTrend          = "trend"
	FieldFuturesPrice   = "futures_price"
	FieldCallPrice      = "call_price"
	FieldPutPrice       = "put_price"
	FieldOptionsTrend   = "options_trend"
	FieldSentimentScore = "sentiment_score"
	FieldRecommendation = "recommendation"

	GroupQuote       = "quote"
	GroupHistory     = "history"
	GroupDerivatives = "derivatives"
	GroupNews        = "news"

	// SourceFailed marks a field-group for which no source produced a value.
	SourceFailed = "failed"
	// SourceDerived marks fields computed from other fields of the same record.
	SourceDerived = "derived"
)

// StockRecord is the canonical reconciled output row for one security in one
// run. Every data field is independently nullable; absent data is a value,
// not an error. Fields merge first-writer-wins: once populated by a
// higher-priority source they are never overwritten.
type StockRecord struct {
	Symbol string `json:"symbol"`

	Price   *float64 `json:"price"`
	DayHigh *float64 `json:"day_high"`
	DayLow  *float64 `json:"day_low"`
	Volume  *float64 `json:"volume"`

	ShortMA *float64 `json:"short_ma"`
	LongMA  *float64 `json:"long_ma"`
	Trend   *Trend   `json:"trend"`

	FuturesPrice *float64 `json:"futures_price"`
	CallPrice    *float64 `json:"call_price"`
	PutPrice     *float64 `json:"put_price"`
	OptionsTrend *Trend   `json:"options_trend"`

	SentimentScore *float64 `json:"sentiment_score"`

	Recommendation Recommendation `json:"recommendation"`

	Provenance map[string]string `json:"provenance"`
}

// NewStockRecord creates an empty record for a security. It is filled
// incrementally by the orchestrator and finalized by the recommender.
func NewStockRecord(symbol string) *StockRecord {
	return &StockRecord{
		Symbol:     symbol,
		Provenance: make(map[string]string),
	}
}

// MergeQuote merges spot fields first-writer-wins and records provenance for
// every field it actually wrote.
func (r *StockRecord) MergeQuote(q Quote, source string) {
	r.setFloat(&r.Price, q.Price, FieldPrice, source)
	r.setFloat(&r.DayHigh, q.DayHigh, FieldDayHigh, source)
	r.setFloat(&r.DayLow, q.DayLow, FieldDayLow, source)
	r.setFloat(&r.Volume, q.Volume, FieldVolume, source)
}

// QuoteComplete reports whether all spot fields are populated, i.e. there is
// nothing left for a lower-priority quote source to contribute.
func (r *StockRecord) QuoteComplete() bool {
	return r.Price != nil && r.DayHigh != nil && r.DayLow != nil && r.Volume != nil
}

// MergeDerivatives merges futures/options prices first-writer-wins.
func (r *StockRecord) MergeDerivatives(d DerivativeQuote, source string) {
	r.setFloat(&r.FuturesPrice, d.FuturesPrice, FieldFuturesPrice, source)
	r.setFloat(&r.CallPrice, d.CallPrice, FieldCallPrice, source)
	r.setFloat(&r.PutPrice, d.PutPrice, FieldPutPrice, source)
}

// DerivativesComplete reports whether all derivative fields are populated.
func (r *StockRecord) DerivativesComplete() bool {
	return r.FuturesPrice != nil && r.CallPrice != nil && r.PutPrice != nil
}

// SetIndicators writes the moving averages and trend computed from the price
// history supplied by source. Write-once: subsequent calls are no-ops.
func (r *StockRecord) SetIndicators(shortMA, longMA *float64, trend Trend, source string) {
	if r.Trend != nil {
		return
	}
	r.setFloat(&r.ShortMA, shortMA, FieldShortMA, source)
	r.setFloat(&r.LongMA, longMA, FieldLongMA, source)
	t := trend
	r.Trend = &t
	r.Provenance[FieldTrend] = SourceDerived + ":" + source
}

// SetOptionsTrend writes the derived options trend. Write-once.
func (r *StockRecord) SetOptionsTrend(trend Trend, source string) {
	if r.OptionsTrend != nil {
		return
	}
	t := trend
	r.OptionsTrend = &t
	r.Provenance[FieldOptionsTrend] = SourceDerived + ":" + source
}

// SetSentiment writes the aggregated sentiment score. Write-once. A nil score
// (zero articles) is kept distinct from a genuine 0.0 mean.
func (r *StockRecord) SetSentiment(score *float64, source string) {
	if r.SentimentScore != nil || score == nil {
		return
	}
	r.setFloat(&r.SentimentScore, score, FieldSentimentScore, source)
}

// SetRecommendation finalizes the record with the derived recommendation.
func (r *StockRecord) SetRecommendation(rec Recommendation) {
	r.Recommendation = rec
	r.Provenance[FieldRecommendation] = SourceDerived
}

// MarkGroupFailed records that every configured source for a field-group
// failed or returned nothing. A data-completeness gap, not a pipeline error.
func (r *StockRecord) MarkGroupFailed(group string) {
	r.Provenance[group] = SourceFailed
}

func (r *StockRecord) setFloat(dst **float64, v *float64, field, source string) {
	if *dst != nil || v == nil {
		return
	}
	val := *v
	*dst = &val
	r.Provenance[field] = source
}
