package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoClientFetch(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"id":        r.URL.Query().Get("id"),
			"convertId": r.URL.Query().Get("convertId"),
			"timeStart": r.URL.Query().Get("timeStart"),
			"timeEnd":   r.URL.Query().Get("timeEnd"),
			"interval":  r.URL.Query().Get("interval"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"quotes": [
					{"timeOpen": "2024-03-01T00:00:00.000Z", "quote": {"high": 58000.10, "low": 57000.04}},
					{"timeOpen": "2024-03-02T00:00:00.000Z", "quote": {"high": 58100.555, "low": 58000.55}}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewCryptoClient(CryptoConfig{
		BaseURL:   server.URL,
		AssetID:   1,
		ConvertID: 2784,
	})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	series, err := client.Fetch(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "1", gotQuery["id"])
	assert.Equal(t, "2784", gotQuery["convertId"])
	assert.Equal(t, "daily", gotQuery["interval"])
	// Window widened by one second on each side for boundary rounding.
	assert.Equal(t, "1709251199", gotQuery["timeStart"])
	assert.Equal(t, "1709337601", gotQuery["timeEnd"])

	require.Len(t, series, 2)
	// round((58000.10+57000.04)/2, 2) = 57500.07
	assert.True(t, series["2024-03-01"].Equal(decimal.RequireFromString("57500.07")),
		"got %s", series["2024-03-01"])
	// round((58100.555+58000.55)/2, 2) = round(58050.5525, 2) = 58050.55
	assert.True(t, series["2024-03-02"].Equal(decimal.RequireFromString("58050.55")),
		"got %s", series["2024-03-02"])
}

func TestCryptoClientFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCryptoClient(CryptoConfig{BaseURL: server.URL, AssetID: 1, ConvertID: 2784})

	_, err := client.Fetch(context.Background(), time.Now().AddDate(0, 0, -2), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFiatClientFetch(t *testing.T) {
	var gotPath, gotStart, gotEnd string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("start_date")
		gotEnd = r.URL.Query().Get("end_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"observations": [
				{"d": "2024-03-01", "FXUSDCAD": {"v": "1.3316"}},
				{"d": "2024-03-04", "FXUSDCAD": {"v": "1.3542"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewFiatClient(FiatConfig{BaseURL: server.URL, SeriesCode: "FXUSDCAD"})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	series, err := client.Fetch(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "/FXUSDCAD/json", gotPath)
	// Window widened by seven days on each side for interpolation margin.
	assert.Equal(t, "2024-02-23", gotStart)
	assert.Equal(t, "2024-03-11", gotEnd)

	require.Len(t, series, 2)
	assert.True(t, series["2024-03-01"].Equal(decimal.RequireFromString("1.3316")))
	assert.True(t, series["2024-03-04"].Equal(decimal.RequireFromString("1.3542")))
}

func TestFiatClientFetchBadRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"observations": [{"d": "2024-03-01", "FXUSDCAD": {"v": "not-a-number"}}]}`))
	}))
	defer server.Close()

	client := NewFiatClient(FiatConfig{BaseURL: server.URL, SeriesCode: "FXUSDCAD"})

	_, err := client.Fetch(context.Background(), time.Now().AddDate(0, 0, -2), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}
