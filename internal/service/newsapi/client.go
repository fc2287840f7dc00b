// Package newsapi implements the NewsAPI.org adapter feeding the sentiment
// engine with recent headlines per security.
package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

const defaultBaseURL = "https://newsapi.org"

// Config holds the NewsAPI adapter configuration.
type Config struct {
	BaseURL string
	APIKey  string
	// Keywords is appended to the symbol in the search query to keep
	// results on-topic, e.g. ["stock", "NSE"].
	Keywords []string
	PageSize int
	Timeout  time.Duration
}

// Client is the NewsAPI adapter.
type Client struct {
	cfg  Config
	http *xhttp.Client
	log  *logger.Logger
}

// New creates a NewsAPI adapter.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = []string{"stock"}
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 10
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

// Name implements repository.NewsProvider.
func (c *Client) Name() string { return "newsapi" }

type everythingResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Articles implements repository.NewsProvider: recent articles mentioning the
// symbol, most relevant first, at most limit entries.
func (c *Client) Articles(ctx context.Context, sec models.Security, limit int) ([]models.Article, error) {
	if limit <= 0 || limit > c.cfg.PageSize {
		limit = c.cfg.PageSize
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + "/v2/everything",
		QueryParams: map[string][]string{
			"q":        {strings.Join(append([]string{sec.Symbol}, c.cfg.Keywords...), " ")},
			"sortBy":   {"relevancy"},
			"pageSize": {strconv.Itoa(limit)},
			"language": {"en"},
		},
		Headers: map[string]string{
			"X-Api-Key": c.cfg.APIKey,
			"Accept":    "application/json",
		},
	})
	if err != nil {
		return nil, models.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.FaultFromStatus(resp.StatusCode)
	}

	var out everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, models.MalformedFault(err)
	}
	if out.Status != "ok" {
		c.log.Warn("newsapi error response",
			logger.String("symbol", sec.Symbol),
			logger.String("code", out.Code),
			logger.String("message", out.Message),
		)
		if out.Code == "rateLimited" {
			return nil, models.FaultFromStatus(http.StatusTooManyRequests)
		}
		return nil, models.ErrNoData
	}
	if len(out.Articles) == 0 {
		return nil, models.ErrNoData
	}

	articles := make([]models.Article, 0, limit)
	for _, a := range out.Articles {
		if a.Title == "" {
			continue
		}
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Time{}),
		})
		if len(articles) == limit {
			break
		}
	}
	if len(articles) == 0 {
		return nil, models.ErrNoData
	}
	return articles, nil
}
