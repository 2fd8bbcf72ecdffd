package tabular

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderIndex(t *testing.T) {
	rows := [][]any{
		{"Date", "Supplier", "Category", "Currency", "Subtotal", "Subtotal (CAD)"},
		{"2024-01-05", "Hydro", "Utilities", "CAD", 42.5, 42.5},
	}

	index := HeaderIndex(rows)
	assert.Equal(t, 1, index["Date"])
	assert.Equal(t, 5, index["Subtotal"])
	assert.Equal(t, 6, index["Subtotal (CAD)"])

	_, ok := index["subtotal"]
	assert.False(t, ok, "lookup is case-sensitive")
	_, ok = index["Missing"]
	assert.False(t, ok)
}

func TestHeaderIndexEmpty(t *testing.T) {
	assert.Empty(t, HeaderIndex(nil))
	assert.Empty(t, HeaderIndex([][]any{}))
}

func TestDecimal(t *testing.T) {
	row := []any{"", 100.25, "3", "n/a"}

	_, ok := Decimal(row, 1)
	assert.False(t, ok, "empty cell has no value")

	d, ok := Decimal(row, 2)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("100.25")))

	d, ok = Decimal(row, 3)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(3)))

	_, ok = Decimal(row, 4)
	assert.False(t, ok)

	_, ok = Decimal(row, 9)
	assert.False(t, ok, "short rows read as empty")
}

func TestDate(t *testing.T) {
	row := []any{"2024-03-09", ""}

	d, ok := Date(row, 1)
	require.True(t, ok)
	assert.Equal(t, "2024-03-09", d.Format("2006-01-02"))

	_, ok = Date(row, 2)
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	row := []any{"No", "Yes", "", "no "}
	assert.False(t, Bool(row, 1))
	assert.True(t, Bool(row, 2))
	assert.True(t, Bool(row, 3))
	assert.False(t, Bool(row, 4))
}
