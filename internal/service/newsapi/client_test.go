package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, APIKey: "test-key", PageSize: 10}, logger.Nop())
}

func TestArticles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "RELIANCE stock", r.URL.Query().Get("q"))
		assert.Equal(t, "relevancy", r.URL.Query().Get("sortBy"))
		_, _ = w.Write([]byte(`{"status": "ok", "articles": [
			{"title": "Reliance posts record profit", "description": "Strong quarter", "url": "https://example.com/1", "publishedAt": "2025-08-30T10:00:00Z"},
			{"title": "Analysts upbeat on Reliance", "url": "https://example.com/2"}
		]}`))
	})

	articles, err := c.Articles(context.Background(), models.Security{Symbol: "RELIANCE"}, 10)

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Reliance posts record profit", articles[0].Title)
	assert.Equal(t, "Strong quarter", articles[0].Description)
	assert.Equal(t, 2025, articles[0].PublishedAt.Year())
}

func TestArticlesCappedAtLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "articles": [
			{"title": "one"}, {"title": "two"}, {"title": "three"}
		]}`))
	})

	articles, err := c.Articles(context.Background(), models.Security{Symbol: "TCS"}, 2)

	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestArticlesSkipsUntitled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "articles": [
			{"title": "", "description": "removed"}, {"title": "kept"}
		]}`))
	})

	articles, err := c.Articles(context.Background(), models.Security{Symbol: "INFY"}, 10)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "kept", articles[0].Title)
}

func TestArticlesNoCoverage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "articles": []}`))
	})

	_, err := c.Articles(context.Background(), models.Security{Symbol: "OBSCURE"}, 10)
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestArticlesRateLimitedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Articles(context.Background(), models.Security{Symbol: "SBIN"}, 10)
	assert.True(t, models.IsRateLimited(err))
}

func TestArticlesRateLimitedEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "code": "rateLimited", "message": "too many requests"}`))
	})

	_, err := c.Articles(context.Background(), models.Security{Symbol: "ITC"}, 10)
	assert.True(t, models.IsRateLimited(err))
}
