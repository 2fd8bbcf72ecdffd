package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frousseau/sheetkeeper/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "rates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSaveAndGetRates(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	series := model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.3316"),
		"2024-03-04": decimal.RequireFromString("1.3542"),
	}
	require.NoError(t, store.SaveRates(ctx, "fiat", series))

	got, err := store.GetRates(ctx, "fiat", day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got["2024-03-01"].Equal(decimal.RequireFromString("1.3316")))
	assert.True(t, got["2024-03-04"].Equal(decimal.RequireFromString("1.3542")))
}

func TestGetRatesFiltersBySourceAndRange(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveRates(ctx, "fiat", model.RateSeries{
		"2024-02-28": decimal.RequireFromString("1.33"),
		"2024-03-01": decimal.RequireFromString("1.34"),
	}))
	require.NoError(t, store.SaveRates(ctx, "crypto", model.RateSeries{
		"2024-03-01": decimal.RequireFromString("57500.07"),
	}))

	got, err := store.GetRates(ctx, "fiat", day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "2024-03-01")
	assert.True(t, got["2024-03-01"].Equal(decimal.RequireFromString("1.34")))
}

func TestSaveRatesUpserts(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveRates(ctx, "fiat", model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.33"),
	}))
	require.NoError(t, store.SaveRates(ctx, "fiat", model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.3399"),
	}))

	got, err := store.GetRates(ctx, "fiat", day("2024-03-01"), day("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, got["2024-03-01"].Equal(decimal.RequireFromString("1.3399")))
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}
