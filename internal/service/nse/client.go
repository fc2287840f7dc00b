// Package nse implements the NSE India scraping adapter. NSE's public API
// requires an established cookie session and a stable browser-like client
// identity; requests without one are served HTTP 401/403.
package nse

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
)

const (
	defaultBaseURL   = "https://www.nseindia.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// sessions go stale server-side well before an hour; refresh early
	sessionTTL = 5 * time.Minute
)

// Config holds the NSE adapter configuration. Passed in at construction;
// no package-level credential or session state.
type Config struct {
	BaseURL   string
	HomeURL   string
	UserAgent string
	Timeout   time.Duration
	Index     string
}

// Client is the NSE adapter. It serves three capabilities: universe
// constituents, spot quotes, and derivatives quotes. A single Client is safe
// for concurrent calls; only the session bootstrap is serialized.
type Client struct {
	cfg  Config
	http *xhttp.Client
	log  *logger.Logger

	mu        sync.Mutex
	sessionAt time.Time
}

// New creates an NSE adapter.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HomeURL == "" {
		cfg.HomeURL = cfg.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithUserAgent(cfg.UserAgent),
			xhttp.WithCookieJar(),
		),
		log: log,
	}
}

// Name implements the provider interfaces.
func (c *Client) Name() string { return "nse" }

// ensureSession fetches the home page to obtain session cookies. Refreshed
// past sessionTTL; concurrent callers bootstrap at most once.
func (c *Client) ensureSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.sessionAt) < sessionTTL {
		return nil
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.HomeURL,
		Headers: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
	})
	if err != nil {
		return models.ClassifyTransport(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return models.FaultFromStatus(resp.StatusCode)
	}
	c.sessionAt = time.Now()
	return nil
}

// getJSON performs a session-backed API call and decodes a 2xx JSON body.
func (c *Client) getJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.cfg.BaseURL + path,
		QueryParams: query,
		Headers: map[string]string{
			"Accept":          "application/json",
			"Accept-Language": "en-US,en;q=0.9",
			"Referer":         c.cfg.HomeURL,
		},
	})
	if err != nil {
		return models.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// a 401 here means the session went stale; next call re-bootstraps
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.mu.Lock()
			c.sessionAt = time.Time{}
			c.mu.Unlock()
		}
		return models.FaultFromStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ClassifyTransport(err)
	}
	if err := decodeStrictJSON(body, dest); err != nil {
		c.log.Warn("nse malformed payload",
			logger.String("path", path),
			logger.String("sample", payloadSample(body)),
		)
		return models.MalformedFault(err)
	}
	return nil
}

func payloadSample(b []byte) string {
	const max = 200
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
