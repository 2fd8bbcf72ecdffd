package sheets

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/api/sheets/v4"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
)

// RateColumn is one source's dense series, written as a named column of
// the Exchange rates sheet.
type RateColumn struct {
	Name   string
	Series model.RateSeries
}

// UpdateExchangeRates replaces the Exchange rates sheet's contents: a
// Date column plus one column per source, one row per day in ascending
// order. Conversion formulas written by the edit reactor look up column
// B, so callers put the base conversion series first.
func (c *Client) UpdateExchangeRates(ctx context.Context, columns []RateColumn) error {
	lastColumn := common.ColumnLetter(len(columns) + 1)

	_, err := c.sheets.Spreadsheets.Values.Clear(c.config.SpreadsheetID,
		fmt.Sprintf("%s!A:%s", model.SheetExchangeRates, lastColumn), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear exchange rates: %w", err)
	}

	dates := make(map[string]bool)
	for _, col := range columns {
		for d := range col.Series {
			dates[d] = true
		}
	}
	ordered := make([]string, 0, len(dates))
	for d := range dates {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	values := make([][]any, 0, len(ordered)+1)
	header := []any{model.HeaderDate}
	for _, col := range columns {
		header = append(header, col.Name)
	}
	values = append(values, header)

	for _, date := range ordered {
		row := []any{date}
		for _, col := range columns {
			if rate, ok := col.Series[date]; ok {
				row = append(row, rate.String())
			} else {
				row = append(row, "")
			}
		}
		values = append(values, row)
	}

	_, err = c.sheets.Spreadsheets.Values.Update(c.config.SpreadsheetID,
		fmt.Sprintf("%s!A1", model.SheetExchangeRates),
		&sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write exchange rates: %w", err)
	}

	c.logger.Info("exchange rates updated", "days", len(ordered), "sources", len(columns))

	return nil
}
