package report

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expenseRow(row int, category, currency, subtotal string) model.LedgerRow {
	r := model.LedgerRow{
		Row:      row,
		Category: category,
		Currency: currency,
		Side:     model.SideExpense,
	}
	if subtotal != "" {
		r.Subtotal = dec(subtotal)
		r.SubtotalBase = dec(subtotal)
		r.HasSubtotal = true
		r.HasBase = true
	}
	return r
}

func TestAggregateSumsWithRecurrence(t *testing.T) {
	second := expenseRow(3, "Office", "USD", "50")
	second.Recurrence = dec("3")
	second.HasRecur = true

	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows: []model.LedgerRow{
			expenseRow(2, "Office", "USD", "100"),
			second,
		},
		Categories: []model.Category{{Name: "Office"}},
	}

	rows, err := Aggregate(in, "USD")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 100 + 50*3
	assert.True(t, rows[0].Subtotal.Equal(dec("250")), "got %s", rows[0].Subtotal)
	assert.True(t, rows[0].SubtotalBase.Equal(dec("250")))
}

func TestAggregateFiltersByCategoryAndCurrency(t *testing.T) {
	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows: []model.LedgerRow{
			expenseRow(2, "Office", "USD", "100"),
			expenseRow(3, "Office", "CAD", "40"),
			expenseRow(4, "Travel", "USD", "75"),
		},
		Categories: []model.Category{
			{Name: "Office"},
			{Name: "Travel"},
			{Name: "Meals"},
		},
	}

	rows, err := Aggregate(in, "USD")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Office", rows[0].Category)
	assert.True(t, rows[0].Subtotal.Equal(dec("100")))
	assert.Equal(t, "Travel", rows[1].Category)
	assert.True(t, rows[1].Subtotal.Equal(dec("75")))
}

func TestAggregateOmitsAllZeroCategories(t *testing.T) {
	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows:       []model.LedgerRow{expenseRow(2, "Office", "USD", "100")},
		Categories: []model.Category{
			{Name: "Meals"}, // no matching rows
			{Name: "Office"},
		},
	}

	rows, err := Aggregate(in, "USD")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Office", rows[0].Category)
}

func TestAggregateTaxOnlyRowStillEmitted(t *testing.T) {
	row := model.LedgerRow{
		Row: 2, Category: "Office", Currency: "CAD", Side: model.SideExpense,
		GST: dec("5.00"), HasGST: true,
	}

	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows:       []model.LedgerRow{row},
		Categories: []model.Category{{Name: "Office"}},
	}

	rows, err := Aggregate(in, "CAD")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].GST.Equal(dec("5.00")))
}

func TestAggregateMissingBaseSubtotalIsFatal(t *testing.T) {
	bad := model.LedgerRow{
		Row: 5, Category: "Office", Currency: "USD", Side: model.SideExpense,
		Subtotal: dec("100"), HasSubtotal: true, // HasBase deliberately false
	}

	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows:       []model.LedgerRow{bad},
		Categories: []model.Category{{Name: "Office"}},
	}

	_, err := Aggregate(in, "USD")
	require.Error(t, err)

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	require.NotNil(t, userErr.Cell)
	assert.Equal(t, "Expenses", userErr.Cell.Sheet)
	assert.Equal(t, 5, userErr.Cell.Row)
	assert.Equal(t, 7, userErr.Cell.Column)
}

func TestAggregateCarriesCategoryMetadata(t *testing.T) {
	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows:       []model.LedgerRow{expenseRow(2, "Equipment", "CAD", "900")},
		Categories: []model.Category{{
			Name:        "Equipment",
			GIFICode:    "8690",
			BusinessPct: dec("0.8"),
			Capital:     true,
		}},
	}

	rows, err := Aggregate(in, "CAD")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "8690", rows[0].GIFICode)
	assert.True(t, rows[0].BusinessPct.Equal(dec("0.8")))
	assert.True(t, rows[0].Capital)
}

func TestAggregateIsIdempotent(t *testing.T) {
	in := Input{
		SheetName:  "Expenses",
		BaseColumn: 7,
		Rows: []model.LedgerRow{
			expenseRow(2, "Office", "USD", "100"),
			expenseRow(3, "Travel", "USD", "60.25"),
		},
		Categories: []model.Category{{Name: "Office"}, {Name: "Travel"}},
	}

	first, err := Aggregate(in, "USD")
	require.NoError(t, err)
	second, err := Aggregate(in, "USD")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.True(t, first[i].Subtotal.Equal(second[i].Subtotal))
		assert.True(t, first[i].GST.Equal(second[i].GST))
		assert.True(t, first[i].QST.Equal(second[i].QST))
	}
}
