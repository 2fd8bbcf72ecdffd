package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/frousseau/sheetkeeper/internal/react"
)

// Apply performs a set of cell-write intents against the workbook.
// Values and formulas go through one batch update; clears through a batch
// clear. USER_ENTERED input parses leading-= strings as formulas, which
// is exactly the intent encoding the reactor produces.
func (c *Client) Apply(ctx context.Context, writes []react.CellWrite) error {
	if len(writes) == 0 {
		return nil
	}

	var data []*sheets.ValueRange
	var clears []string

	for _, w := range writes {
		rangeStr := fmt.Sprintf("%s!%s", w.Cell.Sheet, w.Cell.A1())
		switch w.Kind {
		case react.WriteClear:
			clears = append(clears, rangeStr)
		case react.WriteValue, react.WriteFormula:
			data = append(data, &sheets.ValueRange{
				Range:  rangeStr,
				Values: [][]any{{w.Value}},
			})
		}
	}

	if len(data) > 0 {
		_, err := c.sheets.Spreadsheets.Values.BatchUpdate(c.config.SpreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             data,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to apply cell writes: %w", err)
		}
	}

	if len(clears) > 0 {
		_, err := c.sheets.Spreadsheets.Values.BatchClear(c.config.SpreadsheetID, &sheets.BatchClearValuesRequest{
			Ranges: clears,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to clear cells: %w", err)
		}
	}

	c.logger.Debug("applied cell writes", "writes", len(data), "clears", len(clears))

	return nil
}
