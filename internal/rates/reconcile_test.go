package rates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frousseau/sheetkeeper/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReconcileFillsGapsWithNeighborAverage(t *testing.T) {
	sparse := model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.30"),
		"2024-03-05": decimal.RequireFromString("1.34"),
	}

	dense := Reconcile(sparse, day("2024-03-01"), day("2024-03-05"))

	require.Len(t, dense, 5)
	for _, gap := range []string{"2024-03-02", "2024-03-03", "2024-03-04"} {
		assert.True(t, dense[gap].Equal(decimal.RequireFromString("1.32")), "day %s", gap)
	}
}

func TestReconcilePassesExactMatchesThroughUnrounded(t *testing.T) {
	sparse := model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.301234567"),
	}

	dense := Reconcile(sparse, day("2024-03-01"), day("2024-03-01"))

	require.Len(t, dense, 1)
	assert.True(t, dense["2024-03-01"].Equal(decimal.RequireFromString("1.301234567")))
}

func TestReconcileRoundsInterpolatedValues(t *testing.T) {
	sparse := model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.33333"),
		"2024-03-03": decimal.RequireFromString("1.33334"),
	}

	dense := Reconcile(sparse, day("2024-03-01"), day("2024-03-03"))

	// (1.33333+1.33334)/2 = 1.333335, rounded to 4 places.
	assert.True(t, dense["2024-03-02"].Equal(decimal.RequireFromString("1.3333")),
		"got %s", dense["2024-03-02"])
}

func TestReconcileOmitsDaysWithoutBothNeighbors(t *testing.T) {
	sparse := model.RateSeries{
		"2024-03-10": decimal.RequireFromString("1.31"),
	}

	// Nothing exists before or after 03-10, so every other day is missing
	// a neighbor on one side and stays unfilled.
	dense := Reconcile(sparse, day("2024-03-08"), day("2024-03-14"))

	require.Len(t, dense, 1)
	assert.Contains(t, dense, "2024-03-10")
	assert.NotContains(t, dense, "2024-03-09")
	assert.NotContains(t, dense, "2024-03-11")
}

func TestReconcileRespectsSearchBound(t *testing.T) {
	// The only prior rate is 8 days before the interval start, beyond the
	// 7-day margin, so nothing can be filled.
	sparse := model.RateSeries{
		"2024-03-01": decimal.RequireFromString("1.30"),
		"2024-03-20": decimal.RequireFromString("1.35"),
	}

	dense := Reconcile(sparse, day("2024-03-09"), day("2024-03-10"))

	assert.Empty(t, dense)
}

func TestReconcileUsesPaddedNeighborsOutsideInterval(t *testing.T) {
	sparse := model.RateSeries{
		"2024-02-27": decimal.RequireFromString("1.30"), // 3 days before range
		"2024-03-04": decimal.RequireFromString("1.32"), // 2 days after range
	}

	dense := Reconcile(sparse, day("2024-03-01"), day("2024-03-02"))

	require.Len(t, dense, 2)
	assert.True(t, dense["2024-03-01"].Equal(decimal.RequireFromString("1.31")))
	assert.True(t, dense["2024-03-02"].Equal(decimal.RequireFromString("1.31")))
}
