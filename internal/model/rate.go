package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date key format used throughout.
const DateFormat = "2006-01-02"

// RateSeries maps an ISO 8601 calendar date to a positive decimal rate.
// A sparse series (raw API output) may have gaps on non-trading days; a
// dense series has one entry per day in its range.
type RateSeries map[string]decimal.Decimal

// Dates returns the series keys in ascending order.
func (s RateSeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// RateObservation is one cached daily rate from a named source.
type RateObservation struct {
	Source string
	Date   string
	Rate   decimal.Decimal
}

// Day truncates a time to its calendar-date key.
func Day(t time.Time) string {
	return t.Format(DateFormat)
}
