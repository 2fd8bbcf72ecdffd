package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/report"
	"github.com/frousseau/sheetkeeper/internal/tabular"
)

// ParseLedger builds typed ledger rows from a sheet snapshot. It returns
// the rows plus the 1-based column of the base-currency subtotal, which
// the aggregator needs to point at integrity failures. Category,
// Currency, Subtotal, and the base-subtotal column must exist.
func ParseLedger(sheetName string, rows [][]any, side model.LedgerSide, baseCurrency string) ([]model.LedgerRow, int, error) {
	index := tabular.HeaderIndex(rows)
	baseHeader := fmt.Sprintf("Subtotal (%s)", baseCurrency)

	required := map[string]int{}
	for _, header := range []string{model.HeaderCategory, model.HeaderCurrency, model.HeaderSubtotal, baseHeader} {
		col, ok := index[header]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q in %s", common.ErrHeaderNotFound, header, sheetName)
		}
		required[header] = col
	}

	var ledger []model.LedgerRow
	for i, raw := range rows[1:] {
		if len(raw) == 0 {
			continue
		}

		entry := model.LedgerRow{
			Side:     side,
			Row:      i + 2,
			Category: tabular.String(raw, required[model.HeaderCategory]),
			Currency: tabular.String(raw, required[model.HeaderCurrency]),
		}
		if col, ok := index[model.HeaderDate]; ok {
			entry.Date, _ = tabular.Date(raw, col)
		}
		if col, ok := index[model.HeaderSupplier]; ok {
			entry.Supplier = tabular.String(raw, col)
		}
		if col, ok := index[model.HeaderDescription]; ok {
			entry.Description = tabular.String(raw, col)
		}
		entry.Subtotal, entry.HasSubtotal = tabular.Decimal(raw, required[model.HeaderSubtotal])
		entry.SubtotalBase, entry.HasBase = tabular.Decimal(raw, required[baseHeader])
		if col, ok := index[model.HeaderGST]; ok {
			entry.GST, entry.HasGST = tabular.Decimal(raw, col)
		}
		if col, ok := index[model.HeaderQST]; ok {
			entry.QST, entry.HasQST = tabular.Decimal(raw, col)
		}
		if col, ok := index[model.HeaderRecurrence]; ok {
			entry.Recurrence, entry.HasRecur = tabular.Decimal(raw, col)
		}

		ledger = append(ledger, entry)
	}

	return ledger, required[baseHeader], nil
}

// ParseCategories builds typed categories from a category sheet snapshot.
func ParseCategories(sheetName string, rows [][]any, side model.LedgerSide) ([]model.Category, error) {
	index := tabular.HeaderIndex(rows)
	nameCol, ok := index[model.HeaderName]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", common.ErrHeaderNotFound, model.HeaderName, sheetName)
	}

	var categories []model.Category
	for _, raw := range rows[1:] {
		name := tabular.String(raw, nameCol)
		if name == "" {
			continue
		}

		category := model.Category{Name: name, Side: side}
		if col, ok := index[model.HeaderBusinessPct]; ok {
			category.BusinessPct, _ = tabular.Decimal(raw, col)
		}
		if col, ok := index[model.HeaderCapitalExpense]; ok {
			category.Capital = tabular.String(raw, col) != "" && tabular.Bool(raw, col)
		}
		if col, ok := index[model.HeaderGIFI]; ok {
			category.GIFICode = tabular.String(raw, col)
		}

		categories = append(categories, category)
	}

	return categories, nil
}

// ParseSuppliers builds typed supplier reference rows.
func ParseSuppliers(rows [][]any) ([]model.Supplier, error) {
	index := tabular.HeaderIndex(rows)
	nameCol, ok := index[model.HeaderName]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", common.ErrHeaderNotFound, model.HeaderName, model.SheetSuppliers)
	}

	var suppliers []model.Supplier
	for _, raw := range rows[1:] {
		name := tabular.String(raw, nameCol)
		if name == "" {
			continue
		}

		supplier := model.Supplier{Name: name, Taxable: true}
		if col, ok := index[model.HeaderDefaultCategory]; ok {
			supplier.DefaultCategory = tabular.String(raw, col)
		}
		if col, ok := index[model.HeaderDefaultCurrency]; ok {
			supplier.DefaultCurrency = tabular.String(raw, col)
		}
		if col, ok := index[model.HeaderTaxable]; ok {
			supplier.Taxable = tabular.Bool(raw, col)
		}

		suppliers = append(suppliers, supplier)
	}

	return suppliers, nil
}

// ParseCurrencies builds the report currency list.
func ParseCurrencies(rows [][]any) ([]model.Currency, error) {
	index := tabular.HeaderIndex(rows)
	nameCol, ok := index[model.HeaderName]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", common.ErrHeaderNotFound, model.HeaderName, model.SheetCurrencies)
	}

	var currencies []model.Currency
	for _, raw := range rows[1:] {
		code := tabular.String(raw, nameCol)
		if code == "" {
			continue
		}

		currency := model.Currency{Code: code, DecimalPlaces: 2}
		if col, ok := index[model.HeaderDecimalPlace]; ok {
			if d, found := tabular.Decimal(raw, col); found {
				currency.DecimalPlaces = int32(d.IntPart())
			}
		}

		currencies = append(currencies, currency)
	}

	return currencies, nil
}

// ParseTaxes builds tax-rate reference rows; Row records the sheet
// position tax formulas reference.
func ParseTaxes(rows [][]any) ([]model.TaxRate, error) {
	index := tabular.HeaderIndex(rows)
	nameCol, okName := index[model.HeaderName]
	rateCol, okRate := index[model.HeaderRate]
	if !okName || !okRate {
		return nil, fmt.Errorf("%w: %q/%q in %s", common.ErrHeaderNotFound, model.HeaderName, model.HeaderRate, model.SheetTaxes)
	}

	var taxes []model.TaxRate
	for i, raw := range rows[1:] {
		name := tabular.String(raw, nameCol)
		if name == "" {
			continue
		}
		rate, ok := tabular.Decimal(raw, rateCol)
		if !ok {
			rate = decimal.Zero
		}
		taxes = append(taxes, model.TaxRate{Name: name, Rate: rate, Row: i + 2})
	}

	return taxes, nil
}

// ParseReportingPeriod reads the date range from the first data row of
// the Reporting period sheet.
func ParseReportingPeriod(rows [][]any) (time.Time, time.Time, error) {
	index := tabular.HeaderIndex(rows)
	startCol, okStart := index[model.HeaderStartDate]
	endCol, okEnd := index[model.HeaderEndDate]
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q/%q in %s", common.ErrHeaderNotFound, model.HeaderStartDate, model.HeaderEndDate, model.SheetReportingPeriod)
	}

	for _, raw := range rows[1:] {
		from, okFrom := tabular.Date(raw, startCol)
		to, okTo := tabular.Date(raw, endCol)
		if okFrom && okTo {
			return from, to, nil
		}
	}

	return time.Time{}, time.Time{}, fmt.Errorf("no date range set in %s", model.SheetReportingPeriod)
}

// ReportingPeriod reads the workbook's configured reporting date range.
func (c *Client) ReportingPeriod(ctx context.Context) (time.Time, time.Time, error) {
	rows, err := c.Snapshot(ctx, model.SheetReportingPeriod)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return ParseReportingPeriod(rows)
}

// LoadWorkbook reads everything a report run needs in one pass.
func (c *Client) LoadWorkbook(ctx context.Context, baseCurrency string) (report.Workbook, error) {
	var wb report.Workbook

	name, err := c.WorkbookName(ctx)
	if err != nil {
		return wb, err
	}
	wb.Name = name

	expenseRows, err := c.Snapshot(ctx, model.SheetExpenses)
	if err != nil {
		return wb, err
	}
	expenses, expenseBaseCol, err := ParseLedger(model.SheetExpenses, expenseRows, model.SideExpense, baseCurrency)
	if err != nil {
		return wb, err
	}

	revenueRows, err := c.Snapshot(ctx, model.SheetRevenues)
	if err != nil {
		return wb, err
	}
	revenues, revenueBaseCol, err := ParseLedger(model.SheetRevenues, revenueRows, model.SideRevenue, baseCurrency)
	if err != nil {
		return wb, err
	}

	expenseCategoryRows, err := c.Snapshot(ctx, model.SheetExpenseCategories)
	if err != nil {
		return wb, err
	}
	expenseCategories, err := ParseCategories(model.SheetExpenseCategories, expenseCategoryRows, model.SideExpense)
	if err != nil {
		return wb, err
	}

	revenueCategoryRows, err := c.Snapshot(ctx, model.SheetRevenueCategories)
	if err != nil {
		return wb, err
	}
	revenueCategories, err := ParseCategories(model.SheetRevenueCategories, revenueCategoryRows, model.SideRevenue)
	if err != nil {
		return wb, err
	}

	currencyRows, err := c.Snapshot(ctx, model.SheetCurrencies)
	if err != nil {
		return wb, err
	}
	currencies, err := ParseCurrencies(currencyRows)
	if err != nil {
		return wb, err
	}

	wb.Expenses = report.Input{
		SheetName:  model.SheetExpenses,
		Rows:       expenses,
		Categories: expenseCategories,
		BaseColumn: expenseBaseCol,
	}
	wb.Revenues = report.Input{
		SheetName:  model.SheetRevenues,
		Rows:       revenues,
		Categories: revenueCategories,
		BaseColumn: revenueBaseCol,
	}
	wb.Currencies = currencies

	return wb, nil
}

// LoadReference reads the supplier and tax reference sheets the edit
// reactor matches against.
func (c *Client) LoadReference(ctx context.Context) ([]model.Supplier, []model.TaxRate, error) {
	supplierRows, err := c.Snapshot(ctx, model.SheetSuppliers)
	if err != nil {
		return nil, nil, err
	}
	suppliers, err := ParseSuppliers(supplierRows)
	if err != nil {
		return nil, nil, err
	}

	taxRows, err := c.Snapshot(ctx, model.SheetTaxes)
	if err != nil {
		return nil, nil, err
	}
	taxes, err := ParseTaxes(taxRows)
	if err != nil {
		return nil, nil, err
	}

	return suppliers, taxes, nil
}
