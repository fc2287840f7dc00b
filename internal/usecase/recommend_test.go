package usecase

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func TestRecommendThresholds(t *testing.T) {
	tests := []struct {
		name  string
		score *float64
		want  models.Recommendation
	}{
		{"above buy threshold", models.Float(0.21), models.RecommendationBuy},
		{"exactly buy threshold", models.Float(0.2), models.RecommendationHold},
		{"neutral", models.Float(0.0), models.RecommendationHold},
		{"exactly sell threshold", models.Float(-0.2), models.RecommendationHold},
		{"below sell threshold", models.Float(-0.21), models.RecommendationSell},
		{"no sentiment coverage", nil, models.RecommendationHold},
		{"strongly positive", models.Float(0.95), models.RecommendationBuy},
		{"strongly negative", models.Float(-0.95), models.RecommendationSell},
	}

	r := NewRecommender(0.2, -0.2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.NewStockRecord("TEST")
			if tt.score != nil {
				rec.SetSentiment(tt.score, "newsapi")
			}
			r.Recommend(rec)
			if rec.Recommendation != tt.want {
				t.Errorf("score %v: got %s, want %s", tt.score, rec.Recommendation, tt.want)
			}
		})
	}
}

func TestRecommendSetsProvenance(t *testing.T) {
	r := NewRecommender(0.2, -0.2)
	rec := models.NewStockRecord("TEST")
	r.Recommend(rec)
	if rec.Provenance[models.FieldRecommendation] != models.SourceDerived {
		t.Fatalf("recommendation provenance not marked derived")
	}
}
