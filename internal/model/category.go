package model

import "github.com/shopspring/decimal"

// Category represents one row of an expense or revenue category sheet.
type Category struct {
	Name        string
	GIFICode    string // optional government classification code
	BusinessPct decimal.Decimal
	Capital     bool // capital expense (amortized)
	Side        LedgerSide
}

// Supplier represents one row of the Suppliers sheet. Defaults are copied
// into a ledger row when the supplier is typed into it.
type Supplier struct {
	Name            string
	DefaultCategory string
	DefaultCurrency string
	Taxable         bool
}

// Currency represents one row of the Currencies sheet. DecimalPlaces drives
// the display format of report columns for that currency.
type Currency struct {
	Code          string
	DecimalPlaces int32
}

// TaxRate represents one row of the Taxes sheet.
type TaxRate struct {
	Name string
	Rate decimal.Decimal
	Row  int // 1-based row, referenced by tax formulas
}
