// Package tabular maps sheet snapshots onto typed records. Header-name
// lookups happen only here, at the data-access boundary; everything
// downstream works with typed fields.
package tabular

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HeaderIndex maps each header in row 0 of a sheet snapshot to its 1-based
// column position. Matching is exact: no case folding, no trimming. An
// unknown header is simply absent from the map; callers must check.
func HeaderIndex(rows [][]any) map[string]int {
	index := make(map[string]int)
	if len(rows) == 0 {
		return index
	}
	for i, cell := range rows[0] {
		header, ok := cell.(string)
		if !ok || header == "" {
			continue
		}
		if _, dup := index[header]; !dup {
			index[header] = i + 1
		}
	}
	return index
}

// Cell returns the raw value at a 1-based column of a row slice, or nil
// when the row is too short (trailing empty cells are not materialized in
// API snapshots).
func Cell(row []any, column int) any {
	if column < 1 || column > len(row) {
		return nil
	}
	return row[column-1]
}

// String reads a cell as text. Empty cells yield "".
func String(row []any, column int) string {
	switch v := Cell(row, column).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Decimal reads a cell as a decimal value. The second return is false when
// the cell is empty or not numeric.
func Decimal(row []any, column int) (decimal.Decimal, bool) {
	switch v := Cell(row, column).(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// Date reads a cell as a calendar date. Accepts ISO 8601 text; the second
// return is false for empty or unparseable cells.
func Date(row []any, column int) (time.Time, bool) {
	s := strings.TrimSpace(String(row, column))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Bool reads a Yes/No cell. Anything other than "No" (or an explicit
// false) counts as true, matching the workbook's Taxable column semantics.
func Bool(row []any, column int) bool {
	switch v := Cell(row, column).(type) {
	case bool:
		return v
	case string:
		return !strings.EqualFold(strings.TrimSpace(v), "no")
	default:
		return true
	}
}
