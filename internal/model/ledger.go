// Package model defines the typed records backing each workbook sheet.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSide indicates whether a ledger row records an expense or a revenue.
type LedgerSide string

const (
	// SideExpense marks rows from the Expenses sheet.
	SideExpense LedgerSide = "expense"
	// SideRevenue marks rows from the Revenues sheet.
	SideRevenue LedgerSide = "revenue"
)

// LedgerRow is one expense or revenue entry, read fresh from the workbook
// on each invocation. Optional monetary fields carry a presence flag so a
// genuinely empty cell is distinguishable from an explicit zero.
type LedgerRow struct {
	Date         time.Time
	Category     string
	Currency     string
	Supplier     string // expenses only
	Description  string
	Subtotal     decimal.Decimal
	SubtotalBase decimal.Decimal
	GST          decimal.Decimal
	QST          decimal.Decimal
	Recurrence   decimal.Decimal
	Side         LedgerSide
	Row          int // 1-based row in the source sheet
	HasSubtotal  bool
	HasBase      bool
	HasGST       bool
	HasQST       bool
	HasRecur     bool
}

// Amortize applies the recurrence multiplier to a monetary field.
// Rows without a recurrence contribute the raw value unchanged.
func (r LedgerRow) Amortize(v decimal.Decimal) decimal.Decimal {
	if r.HasRecur {
		return v.Mul(r.Recurrence)
	}
	return v
}
