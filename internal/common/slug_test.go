package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Office Depot", "office-depot"},
		{"leading and trailing space", "  Hydro Québec  ", "hydro-qubec"},
		{"punctuation stripped", "A&W (Montréal)", "aw-montral"},
		{"whitespace runs collapse", "internet\t service   fee", "internet-service-fee"},
		{"already clean", "rent", "rent"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", ColumnLetter(1))
	assert.Equal(t, "F", ColumnLetter(6))
	assert.Equal(t, "Z", ColumnLetter(26))
	assert.Equal(t, "AA", ColumnLetter(27))
	assert.Equal(t, "AZ", ColumnLetter(52))
}

func TestCellRef(t *testing.T) {
	ref := CellRef{Sheet: "Expenses", Row: 12, Column: 6}
	assert.Equal(t, "F12", ref.A1())
	assert.Equal(t, "Expenses!F12", ref.String())
}
