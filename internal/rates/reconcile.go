package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// boundMargin extends the walk limits beyond the requested interval. It
// matches the padding the fiat source fetches with, so gaps near the
// range edges still find neighbors.
const boundMargin = 7

var two = decimal.NewFromInt(2)

// Reconcile fills gaps in a sparse daily series over the closed interval
// [from, to]. Markets close on weekends and holidays; a missing day is
// filled with the average of the nearest known rates on either side,
// rounded to four decimal places. Days with a known rate pass through
// unrounded. A day whose backward or forward walk exhausts its bound
// without finding a rate is omitted from the output.
func Reconcile(sparse model.RateSeries, from, to time.Time) model.RateSeries {
	dense := make(model.RateSeries)
	lower := from.AddDate(0, 0, -boundMargin)
	upper := to.AddDate(0, 0, boundMargin)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := model.Day(day)
		if rate, ok := sparse[key]; ok {
			dense[key] = rate
			continue
		}

		prior, okPrior := walkBack(sparse, day, lower)
		next, okNext := walkForward(sparse, day, upper)
		if !okPrior || !okNext {
			continue
		}
		dense[key] = prior.Add(next).Div(two).Round(4)
	}

	return dense
}

// walkBack steps backward one day at a time from the target (inclusive)
// until it finds a known rate or passes the lower bound.
func walkBack(sparse model.RateSeries, target, lower time.Time) (decimal.Decimal, bool) {
	for day := target; !day.Before(lower); day = day.AddDate(0, 0, -1) {
		if rate, ok := sparse[model.Day(day)]; ok {
			return rate, true
		}
	}
	return decimal.Zero, false
}

// walkForward steps forward one day at a time from the target (inclusive)
// until it finds a known rate or passes the upper bound.
func walkForward(sparse model.RateSeries, target, upper time.Time) (decimal.Decimal, bool) {
	for day := target; !day.After(upper); day = day.AddDate(0, 0, 1) {
		if rate, ok := sparse[model.Day(day)]; ok {
			return rate, true
		}
	}
	return decimal.Zero, false
}
