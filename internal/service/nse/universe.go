package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"StockPulse/internal/domain/models"
)

type indexResponse struct {
	Data []indexEntry `json:"data"`
}

type indexEntry struct {
	Symbol            string   `json:"symbol"`
	Priority          int      `json:"priority"`
	LastPrice         *float64 `json:"lastPrice"`
	DayHigh           *float64 `json:"dayHigh"`
	DayLow            *float64 `json:"dayLow"`
	TotalTradedVolume *float64 `json:"totalTradedVolume"`
}

// Constituents implements repository.UniverseSource: the configured index's
// members ordered by traded volume, most active first. The index payload
// carries the index itself as a priority row; it is not a security.
func (c *Client) Constituents(ctx context.Context) ([]models.Security, error) {
	var out indexResponse
	err := c.getJSON(ctx, "/api/equity-stockIndices", map[string][]string{
		"index": {c.cfg.Index},
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, models.ErrNoData
	}

	entries := make([]indexEntry, 0, len(out.Data))
	for _, e := range out.Data {
		if e.Priority > 0 || e.Symbol == "" {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return volumeOf(entries[i]) > volumeOf(entries[j])
	})

	secs := make([]models.Security, 0, len(entries))
	for _, e := range entries {
		secs = append(secs, models.Security{Symbol: e.Symbol, Exchange: "NSE"})
	}
	if len(secs) == 0 {
		return nil, models.ErrNoData
	}
	return secs, nil
}

func volumeOf(e indexEntry) float64 {
	if e.TotalTradedVolume == nil {
		return 0
	}
	return *e.TotalTradedVolume
}

// decodeStrictJSON decodes into dest and rejects payloads that are valid JSON
// but not the expected shape (NSE serves HTML error pages with 200 at times).
func decodeStrictJSON(body []byte, dest interface{}) error {
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return err
	}
	return nil
}
