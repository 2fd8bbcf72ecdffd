// Package report aggregates ledger rows into per-category, per-currency
// report lines and drives report document generation.
package report

import (
	"fmt"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
)

// Input is one aggregation pass: the ledger rows of one side (expenses or
// revenues) plus the category sheet that partitions them. BaseColumn is
// the 1-based position of the base-currency subtotal column in the source
// sheet, used to point at the offending cell on integrity failures.
type Input struct {
	SheetName  string
	Rows       []model.LedgerRow
	Categories []model.Category
	BaseColumn int
}

// Aggregate sums the monetary fields of every ledger row matching each
// category and the given currency. Rows carrying a recurrence multiplier
// contribute each field multiplied by it. Categories whose aggregates are
// all zero are omitted.
//
// A matching row with a subtotal but no base-currency subtotal is a fatal
// data gap: the report cannot state converted totals, so aggregation
// stops and the error names the cell to fix.
func Aggregate(in Input, currency string) ([]model.ReportRow, error) {
	var out []model.ReportRow

	for _, category := range in.Categories {
		row := model.ReportRow{
			Category:    category.Name,
			GIFICode:    category.GIFICode,
			BusinessPct: category.BusinessPct,
			Capital:     category.Capital,
		}

		for _, entry := range in.Rows {
			if entry.Category != category.Name || entry.Currency != currency {
				continue
			}
			if entry.HasSubtotal && !entry.HasBase {
				return nil, common.NewCellError(
					fmt.Sprintf("Please fill in the base-currency subtotal for row %d", entry.Row),
					common.CellRef{Sheet: in.SheetName, Row: entry.Row, Column: in.BaseColumn},
				)
			}
			if entry.HasSubtotal {
				row.Subtotal = row.Subtotal.Add(entry.Amortize(entry.Subtotal))
			}
			if entry.HasBase {
				row.SubtotalBase = row.SubtotalBase.Add(entry.Amortize(entry.SubtotalBase))
			}
			if entry.HasGST {
				row.GST = row.GST.Add(entry.Amortize(entry.GST))
			}
			if entry.HasQST {
				row.QST = row.QST.Add(entry.Amortize(entry.QST))
			}
		}

		if row.IsZero() {
			continue
		}
		out = append(out, row)
	}

	return out, nil
}
