package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// fiatPadding widens the requested window on both sides so interpolation
// near the range edges still finds trading-day neighbors.
const fiatPadding = 7 * 24 * time.Hour

// FiatConfig parameterizes the fiat observations endpoint.
type FiatConfig struct {
	BaseURL    string // observations endpoint, series code appended
	SeriesCode string // e.g. FXUSDCAD
	HTTPClient *http.Client
}

// FiatClient fetches official daily foreign-exchange observations.
type FiatClient struct {
	httpClient *http.Client
	baseURL    string
	seriesCode string
}

// The observation value field is named after the series code, so each
// observation decodes as date plus a code-keyed map.
type fiatResponse struct {
	Observations []map[string]json.RawMessage `json:"observations"`
}

type fiatValue struct {
	V string `json:"v"`
}

// NewFiatClient creates a client for the fiat observations source.
func NewFiatClient(cfg FiatConfig) *FiatClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &FiatClient{
		baseURL:    cfg.BaseURL,
		seriesCode: cfg.SeriesCode,
		httpClient: httpClient,
	}
}

// Source implements Fetcher.
func (c *FiatClient) Source() string { return "fiat" }

// Fetch retrieves daily observations covering [from, to], widened by seven
// days on each side.
func (c *FiatClient) Fetch(ctx context.Context, from, to time.Time) (model.RateSeries, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s/json", c.baseURL, c.seriesCode))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fiat source URL: %w", err)
	}

	q := u.Query()
	q.Set("start_date", model.Day(from.Add(-fiatPadding)))
	q.Set("end_date", model.Day(to.Add(fiatPadding)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fiat observations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fiat source error: %d - %s", resp.StatusCode, string(body))
	}

	var parsed fiatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode fiat response: %w", err)
	}

	series := make(model.RateSeries, len(parsed.Observations))
	for _, obs := range parsed.Observations {
		var date string
		if raw, ok := obs["d"]; ok {
			if err := json.Unmarshal(raw, &date); err != nil {
				return nil, fmt.Errorf("failed to parse observation date: %w", err)
			}
		}
		raw, ok := obs[c.seriesCode]
		if !ok || date == "" {
			continue
		}
		var value fiatValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("failed to parse observation for %s: %w", date, err)
		}
		rate, err := decimal.NewFromString(value.V)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate %q for %s: %w", value.V, date, err)
		}
		series[date] = rate
	}

	return series, nil
}
