package react

import (
	"fmt"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/tabular"
)

// supplierDefaults copies a matched supplier's default category and
// currency into the edited row, or clears both when the supplier was
// erased. An unmatched supplier is a no-op.
func supplierDefaults(r *Reactor, e Edit, rc RowContext) []CellWrite {
	categoryCol, okCat := rc.Columns[model.HeaderCategory]
	currencyCol, okCur := rc.Columns[model.HeaderCurrency]
	if !okCat || !okCur {
		return nil
	}

	categoryCell := common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: categoryCol}
	currencyCell := common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: currencyCol}

	if e.NewValue == "" {
		return []CellWrite{
			{Cell: categoryCell, Kind: WriteClear},
			{Cell: currencyCell, Kind: WriteClear},
		}
	}

	supplier, ok := r.findSupplier(e.NewValue)
	if !ok {
		return nil
	}
	return []CellWrite{
		{Cell: categoryCell, Kind: WriteValue, Value: supplier.DefaultCategory},
		{Cell: currencyCell, Kind: WriteValue, Value: supplier.DefaultCurrency},
	}
}

// expenseSubtotal fills the base-currency subtotal and tax formulas when a
// subtotal is typed into an expense row, and clears all three when the
// subtotal is erased. Tax formulas are skipped for non-taxable suppliers.
func expenseSubtotal(r *Reactor, e Edit, rc RowContext) []CellWrite {
	writes := subtotalWrites(r, e, rc)
	if e.NewValue == "" || writes == nil {
		return writes
	}

	supplierCol, ok := rc.Columns[model.HeaderSupplier]
	if ok {
		name := tabular.String(rc.Row, supplierCol)
		if supplier, found := r.findSupplier(name); found && !supplier.Taxable {
			return stripTaxWrites(writes, rc)
		}
	}
	return writes
}

// revenueSubtotal is the Revenues variant: same fill and clear cascade,
// no supplier taxability check.
func revenueSubtotal(r *Reactor, e Edit, rc RowContext) []CellWrite {
	return subtotalWrites(r, e, rc)
}

// subtotalWrites computes the dependent writes of a Subtotal edit: the
// base-currency subtotal (literal when the row is already in the base
// currency, a rate-lookup conversion formula otherwise) and the GST/QST
// tax formulas.
func subtotalWrites(r *Reactor, e Edit, rc RowContext) []CellWrite {
	if e.IsFormula {
		return nil
	}

	subtotalCol, ok := rc.Columns[model.HeaderSubtotal]
	if !ok {
		return nil
	}
	subtotalCell := common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: subtotalCol}

	var writes []CellWrite

	baseCol, hasBaseCol := rc.Columns[r.baseHeader()]
	baseCell := common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: baseCol}

	gstCol, hasGST := rc.Columns[model.HeaderGST]
	qstCol, hasQST := rc.Columns[model.HeaderQST]

	if e.NewValue == "" {
		if hasBaseCol {
			writes = append(writes, CellWrite{Cell: baseCell, Kind: WriteClear})
		}
		if hasGST {
			writes = append(writes, CellWrite{Cell: common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: gstCol}, Kind: WriteClear})
		}
		if hasQST {
			writes = append(writes, CellWrite{Cell: common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: qstCol}, Kind: WriteClear})
		}
		return writes
	}

	if hasBaseCol {
		currency := ""
		if currencyCol, ok := rc.Columns[model.HeaderCurrency]; ok {
			currency = tabular.String(rc.Row, currencyCol)
		}
		if currency == "" || currency == r.baseCurrency {
			writes = append(writes, CellWrite{Cell: baseCell, Kind: WriteValue, Value: e.NewValue})
		} else if dateCol, ok := rc.Columns[model.HeaderDate]; ok {
			dateCell := common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: dateCol}
			formula := fmt.Sprintf("=%s*VLOOKUP(%s, '%s'!$A:$B, 2, FALSE)",
				subtotalCell.A1(), dateCell.A1(), model.SheetExchangeRates)
			writes = append(writes, CellWrite{Cell: baseCell, Kind: WriteFormula, Value: formula})
		}
	}

	if gst, ok := r.findTax(model.HeaderGST); ok && hasGST {
		writes = append(writes, CellWrite{
			Cell:  common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: gstCol},
			Kind:  WriteFormula,
			Value: fmt.Sprintf("=%s*%s!B%d", subtotalCell.A1(), model.SheetTaxes, gst.Row),
		})
	}
	if qst, ok := r.findTax(model.HeaderQST); ok && hasQST {
		writes = append(writes, CellWrite{
			Cell:  common.CellRef{Sheet: e.Sheet, Row: e.Row, Column: qstCol},
			Kind:  WriteFormula,
			Value: fmt.Sprintf("=%s*%s!B%d", subtotalCell.A1(), model.SheetTaxes, qst.Row),
		})
	}

	return writes
}

// stripTaxWrites drops the GST/QST writes from a non-taxable row's write
// set, keeping the base-subtotal write.
func stripTaxWrites(writes []CellWrite, rc RowContext) []CellWrite {
	gstCol := rc.Columns[model.HeaderGST]
	qstCol := rc.Columns[model.HeaderQST]

	kept := writes[:0]
	for _, w := range writes {
		if w.Cell.Column == gstCol || w.Cell.Column == qstCol {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
