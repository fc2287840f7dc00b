package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"StockPulse/internal/domain/models"
)

func TestScoreNoArticlesIsNil(t *testing.T) {
	e := New(10)

	assert.Nil(t, e.Score(nil))
	assert.Nil(t, e.Score([]models.Article{}))
}

func TestScorePositiveHeadlines(t *testing.T) {
	e := New(10)

	score := e.Score([]models.Article{
		{Title: "Company posts excellent results, profit soars"},
		{Title: "Great quarter with strong growth and happy investors"},
	})

	assert.NotNil(t, score)
	assert.Greater(t, *score, 0.0)
}

func TestScoreNegativeHeadlines(t *testing.T) {
	e := New(10)

	score := e.Score([]models.Article{
		{Title: "Terrible losses as fraud scandal hits the company"},
		{Title: "Shares crash after awful earnings disappoint badly"},
	})

	assert.NotNil(t, score)
	assert.Less(t, *score, 0.0)
}

func TestScoreCapsArticles(t *testing.T) {
	e := New(1)

	// only the first article counts; the second would flip the sign
	score := e.Score([]models.Article{
		{Title: "Wonderful amazing fantastic success"},
		{Title: "Horrible terrible disaster failure"},
	})

	assert.NotNil(t, score)
	assert.Greater(t, *score, 0.0)
}

func TestScoreSkipsBlankText(t *testing.T) {
	e := New(10)

	score := e.Score([]models.Article{
		{Title: "   "},
		{Title: ""},
	})

	assert.Nil(t, score)
}

func TestScoreUsesDescription(t *testing.T) {
	e := New(10)

	plain := e.Score([]models.Article{{Title: "Quarterly report released"}})
	enriched := e.Score([]models.Article{{
		Title:       "Quarterly report released",
		Description: "Outstanding profits delight investors, superb growth ahead",
	}})

	assert.NotNil(t, plain)
	assert.NotNil(t, enriched)
	assert.Greater(t, *enriched, *plain)
}
