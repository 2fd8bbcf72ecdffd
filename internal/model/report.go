package model

import "github.com/shopspring/decimal"

// ReportRow is one aggregated report line: a category's sums for a single
// report currency. Created fresh per report generation and never mutated
// after write.
type ReportRow struct {
	Category     string
	GIFICode     string
	BusinessPct  decimal.Decimal
	Capital      bool
	Subtotal     decimal.Decimal
	SubtotalBase decimal.Decimal
	GST          decimal.Decimal
	QST          decimal.Decimal
}

// IsZero reports whether every summed field is zero. All-zero rows are
// omitted from reports.
func (r ReportRow) IsZero() bool {
	return r.Subtotal.IsZero() && r.GST.IsZero() && r.QST.IsZero()
}
