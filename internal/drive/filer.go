// Package drive stores receipt files in Drive and links them back into
// the workbook.
package drive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/react"
	"github.com/frousseau/sheetkeeper/internal/tabular"
)

// API is the slice of Drive used by the filer. The google implementation
// lives in this package; tests use a mock.
type API interface {
	// FindFolder returns the id of a folder with the given name inside
	// parentID, or "" when none exists.
	FindFolder(ctx context.Context, parentID, name string) (string, error)
	CreateFolder(ctx context.Context, parentID, name string) (string, error)
	// UploadFile stores the bytes and returns the stored file's URL.
	UploadFile(ctx context.Context, folderID, filename, mimeType string, data []byte) (string, error)
}

// UploadRequest carries one receipt upload: the file bytes plus an
// explicit reference to the ledger row the receipt belongs to and the
// cell that will hold the link.
type UploadRequest struct {
	WorkbookName string
	Sheet        string
	Filename     string
	MIMEType     string
	Data         []byte
	Columns      map[string]int
	RowValues    []any
	Row          int
	TargetColumn int
}

// Filer uploads receipts into a per-workbook folder under the configured
// storage folder.
type Filer struct {
	api      API
	folderID string
	location *time.Location
}

// NewFiler creates a receipt filer rooted at the configured folder.
func NewFiler(api API, folderID string, location *time.Location) *Filer {
	if location == nil {
		location = time.UTC
	}
	return &Filer{api: api, folderID: folderID, location: location}
}

// Upload validates the row, stores the file, and returns the hyperlink
// write that replaces the target cell. A missing description or date is a
// user error pointing at the cell to fill in.
func (f *Filer) Upload(ctx context.Context, req UploadRequest) (react.CellWrite, error) {
	var none react.CellWrite

	descCol, ok := req.Columns[model.HeaderDescription]
	if !ok {
		return none, fmt.Errorf("%w: %s", common.ErrHeaderNotFound, model.HeaderDescription)
	}
	dateCol, ok := req.Columns[model.HeaderDate]
	if !ok {
		return none, fmt.Errorf("%w: %s", common.ErrHeaderNotFound, model.HeaderDate)
	}

	description := tabular.String(req.RowValues, descCol)
	if description == "" {
		return none, common.NewCellError("Please set description first",
			common.CellRef{Sheet: req.Sheet, Row: req.Row, Column: descCol})
	}
	date, ok := tabular.Date(req.RowValues, dateCol)
	if !ok {
		return none, common.NewCellError("Please set date first",
			common.CellRef{Sheet: req.Sheet, Row: req.Row, Column: dateCol})
	}

	supplier := ""
	if supplierCol, ok := req.Columns[model.HeaderSupplier]; ok {
		supplier = tabular.String(req.RowValues, supplierCol)
	}

	filename := buildFilename(date.In(f.location), supplier, description, req.Filename)

	folderID, err := f.api.FindFolder(ctx, f.folderID, req.WorkbookName)
	if err != nil {
		return none, fmt.Errorf("failed to locate receipt folder: %w", err)
	}
	if folderID == "" {
		folderID, err = f.api.CreateFolder(ctx, f.folderID, req.WorkbookName)
		if err != nil {
			return none, fmt.Errorf("failed to create receipt folder: %w", err)
		}
	}

	fileURL, err := f.api.UploadFile(ctx, folderID, filename, req.MIMEType, req.Data)
	if err != nil {
		return none, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	return react.CellWrite{
		Cell:  common.CellRef{Sheet: req.Sheet, Row: req.Row, Column: req.TargetColumn},
		Kind:  react.WriteFormula,
		Value: fmt.Sprintf("=HYPERLINK(%q, %q)", fileURL, filename),
	}, nil
}

// buildFilename derives the stored name: formatted date plus slugified
// supplier and description, keeping the original extension.
func buildFilename(date time.Time, supplier, description, original string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(original), "."))

	parts := []string{date.Format(model.DateFormat)}
	if s := common.Slugify(supplier); s != "" {
		parts = append(parts, s)
	}
	if s := common.Slugify(description); s != "" {
		parts = append(parts, s)
	}

	name := strings.Join(parts, "-")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
