package usecase

import "StockPulse/internal/domain/models"

// Recommender maps a record's sentiment score onto a trading signal.
type Recommender struct {
	buyThreshold  float64
	sellThreshold float64
}

// NewRecommender creates a recommender with the given thresholds.
// buy must be strictly greater than sell.
func NewRecommender(buy, sell float64) *Recommender {
	return &Recommender{buyThreshold: buy, sellThreshold: sell}
}

// Recommend finalizes rec with its recommendation. A missing sentiment score
// reads as neutral, so the thresholds never fire on absent coverage.
func (r *Recommender) Recommend(rec *models.StockRecord) {
	score := 0.0
	if rec.SentimentScore != nil {
		score = *rec.SentimentScore
	}

	switch {
	case score > r.buyThreshold:
		rec.SetRecommendation(models.RecommendationBuy)
	case score < r.sellThreshold:
		rec.SetRecommendation(models.RecommendationSell)
	default:
		rec.SetRecommendation(models.RecommendationHold)
	}
}
