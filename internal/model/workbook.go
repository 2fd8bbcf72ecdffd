package model

// Named sheets of the bookkeeping workbook.
const (
	SheetExpenses          = "Expenses"
	SheetRevenues          = "Revenues"
	SheetExpenseCategories = "Expense categories"
	SheetRevenueCategories = "Revenue categories"
	SheetSuppliers         = "Suppliers"
	SheetCurrencies        = "Currencies"
	SheetTaxes             = "Taxes"
	SheetExchangeRates     = "Exchange rates"
	SheetReportingPeriod   = "Reporting period"
)

// Header texts used as lookup keys. Matching is exact.
const (
	HeaderDate            = "Date"
	HeaderDescription     = "Description"
	HeaderSupplier        = "Supplier"
	HeaderCategory        = "Category"
	HeaderCurrency        = "Currency"
	HeaderSubtotal        = "Subtotal"
	HeaderGST             = "GST"
	HeaderQST             = "QST"
	HeaderRecurrence      = "Recurrence"
	HeaderTaxable         = "Taxable"
	HeaderName            = "Name"
	HeaderDefaultCategory = "Default expense category"
	HeaderDefaultCurrency = "Default currency"
	HeaderDecimalPlace    = "Decimal place"
	HeaderBusinessPct     = "Percentage used for business activities"
	HeaderCapitalExpense  = "Capital expense"
	HeaderGIFI            = "GIFI"
	HeaderRate            = "Rate"
	HeaderReceipt         = "Receipt"
	HeaderStartDate       = "Start date"
	HeaderEndDate         = "End date"
)
