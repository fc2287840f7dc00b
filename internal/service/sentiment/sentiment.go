// Package sentiment scores news headlines with the VADER lexicon model.
package sentiment

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"StockPulse/internal/domain/models"
)

// Engine averages VADER compound polarity over recent articles.
type Engine struct {
	maxArticles int
}

// New creates a sentiment engine capped at maxArticles per security.
func New(maxArticles int) *Engine {
	if maxArticles <= 0 {
		maxArticles = 10
	}
	return &Engine{maxArticles: maxArticles}
}

// Score returns the mean compound polarity in [-1, 1] over the first
// maxArticles entries, or nil when there is nothing to score. A nil score
// is "no coverage", which is not the same signal as a neutral 0.0.
func (e *Engine) Score(articles []models.Article) *float64 {
	if len(articles) > e.maxArticles {
		articles = articles[:e.maxArticles]
	}

	var sum float64
	var n int
	for _, a := range articles {
		text := a.Title
		if a.Description != "" {
			text += ". " + a.Description
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
		sum += sentitext.PolarityScore(parsed).Compound
		n++
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
