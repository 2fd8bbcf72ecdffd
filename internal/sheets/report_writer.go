package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/report"
)

// Compile-time check that Client satisfies the generator's writer.
var _ report.DocumentWriter = (*Client)(nil)

// CreateDocument creates a new, empty report spreadsheet.
func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			TimeZone: c.config.TimeZone,
		},
	}

	created, err := c.sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	c.logger.Info("created report document",
		"id", created.SpreadsheetId,
		"title", title)

	return created.SpreadsheetId, nil
}

// WriteRows populates a report document and applies display formatting.
// The decimal-place count of the report currency shapes the monetary
// columns' number format only; stored values keep full precision.
func (c *Client) WriteRows(ctx context.Context, documentID string, header []string, rows []model.ReportRow, decimalPlaces int32) error {
	values := make([][]any, 0, len(rows)+1)

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	values = append(values, headerRow)

	for _, row := range rows {
		capital := ""
		if row.Capital {
			capital = "Yes"
		}
		values = append(values, []any{
			row.Category,
			row.GIFICode,
			row.BusinessPct.String(),
			capital,
			row.Subtotal.String(),
			row.SubtotalBase.String(),
			row.GST.String(),
			row.QST.String(),
		})
	}

	for i := 0; i < len(values); i += c.config.BatchSize {
		end := i + c.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		valueRange := &sheets.ValueRange{Values: values[i:end]}
		_, err := c.sheets.Spreadsheets.Values.Update(documentID, fmt.Sprintf("A%d", i+1), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}
	}

	if c.config.EnableFormatting {
		if err := c.applyReportFormatting(ctx, documentID, len(values), decimalPlaces); err != nil {
			// Formatting is presentation only; the data is already written.
			c.logger.Warn("failed to apply formatting", "document_id", documentID, "error", err)
		}
	}

	return nil
}

// numberPattern builds the display pattern for a currency's decimal-place
// count, e.g. 2 -> "#,##0.00".
func numberPattern(decimalPlaces int32) string {
	if decimalPlaces <= 0 {
		return "#,##0"
	}
	return "#,##0." + strings.Repeat("0", int(decimalPlaces))
}

func (c *Client) applyReportFormatting(ctx context.Context, documentID string, totalRows int, decimalPlaces int32) error {
	columns := int64(len(report.Header))

	requests := []*sheets.Request{
		// Bold header row.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   columns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Monetary columns use the currency's decimal-place count.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    1,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 4,
					EndColumnIndex:   columns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "NUMBER",
							Pattern: numberPattern(decimalPlaces),
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		// Business-use percentage column.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    1,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 2,
					EndColumnIndex:   3,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "PERCENT",
							Pattern: "0%",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		// Auto-resize columns.
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   columns,
				},
			},
		},
		// Freeze the header row.
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := c.sheets.Spreadsheets.BatchUpdate(documentID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// MoveToFolder relocates a report document into the configured folder.
func (c *Client) MoveToFolder(ctx context.Context, documentID string) error {
	file, err := c.drive.Files.Get(documentID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read document parents: %w", err)
	}

	call := c.drive.Files.Update(documentID, nil).AddParents(c.config.FolderID)
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}

	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to move document: %w", err)
	}
	return nil
}

// TrashDocument trashes a partially-built report document.
func (c *Client) TrashDocument(ctx context.Context, documentID string) error {
	_, err := c.drive.Files.Update(documentID, &drive.File{Trashed: true}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to trash document: %w", err)
	}
	return nil
}
