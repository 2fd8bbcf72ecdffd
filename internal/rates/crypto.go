package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// CryptoConfig parameterizes the historical-quotes endpoint.
type CryptoConfig struct {
	BaseURL    string // historical quotes endpoint
	AssetID    int    // asset to quote
	ConvertID  int    // target currency id
	Interval   string // quote interval, normally "daily"
	HTTPClient *http.Client
}

// CryptoClient fetches daily crypto quotes and keys the mid price of each
// day's high/low by the quote's date.
type CryptoClient struct {
	httpClient *http.Client
	baseURL    string
	interval   string
	assetID    int
	convertID  int
}

// Crypto API response types.
type cryptoResponse struct {
	Data cryptoData `json:"data"`
}

type cryptoData struct {
	Quotes []cryptoQuote `json:"quotes"`
}

type cryptoQuote struct {
	TimeOpen string     `json:"timeOpen"`
	Quote    cryptoOHLC `json:"quote"`
}

type cryptoOHLC struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// NewCryptoClient creates a client for the crypto historical-quotes source.
func NewCryptoClient(cfg CryptoConfig) *CryptoClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	interval := cfg.Interval
	if interval == "" {
		interval = "daily"
	}
	return &CryptoClient{
		baseURL:    cfg.BaseURL,
		assetID:    cfg.AssetID,
		convertID:  cfg.ConvertID,
		interval:   interval,
		httpClient: httpClient,
	}
}

// Source implements Fetcher.
func (c *CryptoClient) Source() string { return "crypto" }

// Fetch retrieves daily quotes for [from, to]. The endpoint takes Unix
// timestamps; the window is nudged one second outward on each side so
// quotes landing exactly on a boundary survive rounding.
func (c *CryptoClient) Fetch(ctx context.Context, from, to time.Time) (model.RateSeries, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse crypto source URL: %w", err)
	}

	q := u.Query()
	q.Set("id", strconv.Itoa(c.assetID))
	q.Set("convertId", strconv.Itoa(c.convertID))
	q.Set("timeStart", strconv.FormatInt(from.Unix()-1, 10))
	q.Set("timeEnd", strconv.FormatInt(to.Unix()+1, 10))
	q.Set("interval", c.interval)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crypto quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("crypto source error: %d - %s", resp.StatusCode, string(body))
	}

	var parsed cryptoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode crypto response: %w", err)
	}

	series := make(model.RateSeries, len(parsed.Data.Quotes))
	for _, quote := range parsed.Data.Quotes {
		opened, err := time.Parse(time.RFC3339, quote.TimeOpen)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quote date %q: %w", quote.TimeOpen, err)
		}
		mid := decimal.NewFromFloat(quote.Quote.High).
			Add(decimal.NewFromFloat(quote.Quote.Low)).
			Div(decimal.NewFromInt(2)).
			Round(2)
		series[model.Day(opened)] = mid
	}

	return series, nil
}
