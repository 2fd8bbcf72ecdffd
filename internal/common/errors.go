// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Workbook errors.
	ErrHeaderNotFound = errors.New("header not found")
	ErrSheetNotFound  = errors.New("sheet not found")

	// Rate errors.
	ErrRateFetch = errors.New("rate fetch failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CellRef identifies a single cell in a named sheet.
type CellRef struct {
	Sheet  string
	Row    int // 1-based
	Column int // 1-based
}

// A1 returns the cell reference in A1 notation, without the sheet name.
func (c CellRef) A1() string {
	return fmt.Sprintf("%s%d", ColumnLetter(c.Column), c.Row)
}

func (c CellRef) String() string {
	return fmt.Sprintf("%s!%s", c.Sheet, c.A1())
}

// ColumnLetter converts a 1-based column index to its A1 letter form.
func ColumnLetter(column int) string {
	letters := ""
	for column > 0 {
		column--
		letters = string(rune('A'+column%26)) + letters
		column /= 26
	}
	return letters
}

// UserError represents an error that should be shown to the user,
// optionally pointing at the cell that needs correction.
type UserError struct {
	Err         error
	Cell        *CellRef
	UserMessage string
}

func (e *UserError) Error() string {
	msg := e.UserMessage
	if e.Cell != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.Cell)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// NewCellError creates a user-friendly error pointing at a specific cell.
func NewCellError(userMessage string, cell CellRef) error {
	return &UserError{
		UserMessage: userMessage,
		Cell:        &cell,
	}
}
