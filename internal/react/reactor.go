// Package react turns single-cell edit events into cell-write intents.
// Each rule is a pure function of the edit and a snapshot of its row, so
// rules are independently testable and carry no state between events.
package react

import (
	"fmt"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
)

// WriteKind says how a cell write intent is applied.
type WriteKind int

const (
	// WriteValue sets a literal value.
	WriteValue WriteKind = iota
	// WriteFormula sets a formula.
	WriteFormula
	// WriteClear clears the cell's content.
	WriteClear
)

// CellWrite is one intended cell mutation.
type CellWrite struct {
	Value string
	Cell  common.CellRef
	Kind  WriteKind
}

// Edit describes a single-cell edit: which sheet, which row, which column
// (by header name), and the value now in the cell. IsFormula marks cells
// whose content is already formula-derived; those are left alone.
type Edit struct {
	Sheet     string
	Column    string
	NewValue  string
	Row       int
	IsFormula bool
}

// RowContext is the snapshot a rule runs against: the edited sheet's
// header index and the edited row's current values.
type RowContext struct {
	Columns map[string]int
	Row     []any
}

// Handler computes the writes an edit implies. A nil or empty result is a
// no-op; lookup misses never error.
type Handler func(r *Reactor, e Edit, rc RowContext) []CellWrite

type ruleKey struct {
	sheet  string
	column string
}

// Reactor dispatches edits against its rule table. Reference data
// (suppliers, tax rates, base currency) is loaded once per invocation.
type Reactor struct {
	rules        map[ruleKey]Handler
	suppliers    []model.Supplier
	taxes        []model.TaxRate
	baseCurrency string
}

// New creates a reactor with the standard rule table.
func New(baseCurrency string, suppliers []model.Supplier, taxes []model.TaxRate) *Reactor {
	return &Reactor{
		baseCurrency: baseCurrency,
		suppliers:    suppliers,
		taxes:        taxes,
		rules: map[ruleKey]Handler{
			{model.SheetExpenses, model.HeaderSupplier}: supplierDefaults,
			{model.SheetExpenses, model.HeaderSubtotal}: expenseSubtotal,
			{model.SheetRevenues, model.HeaderSubtotal}: revenueSubtotal,
		},
	}
}

// React returns the writes an edit implies. Edits with no matching rule
// return nil.
func (r *Reactor) React(e Edit, rc RowContext) []CellWrite {
	handler, ok := r.rules[ruleKey{e.Sheet, e.Column}]
	if !ok {
		return nil
	}
	return handler(r, e, rc)
}

// baseHeader is the header of the base-currency subtotal column,
// e.g. "Subtotal (CAD)".
func (r *Reactor) baseHeader() string {
	return fmt.Sprintf("Subtotal (%s)", r.baseCurrency)
}

func (r *Reactor) findSupplier(name string) (model.Supplier, bool) {
	for _, s := range r.suppliers {
		if s.Name == name {
			return s, true
		}
	}
	return model.Supplier{}, false
}

func (r *Reactor) findTax(name string) (model.TaxRate, bool) {
	for _, tax := range r.taxes {
		if tax.Name == name {
			return tax, true
		}
	}
	return model.TaxRate{}, false
}
