package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// Header is the first row of every report document.
var Header = []string{
	"Category",
	"GIFI",
	"Percentage used for business activities",
	"Capital expense",
	"Subtotal",
	"Subtotal (base)",
	"GST",
	"QST",
}

// DocumentWriter creates, populates, and files report documents. The
// sheets package provides the Google implementation; tests use a mock.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	WriteRows(ctx context.Context, documentID string, header []string, rows []model.ReportRow, decimalPlaces int32) error
	MoveToFolder(ctx context.Context, documentID string) error
	TrashDocument(ctx context.Context, documentID string) error
}

// Workbook is the state a report run reads from the bookkeeping workbook.
type Workbook struct {
	Name       string
	Expenses   Input
	Revenues   Input
	Currencies []model.Currency
}

// Generator produces one expense and one revenue report document per
// report currency.
type Generator struct {
	writer DocumentWriter
	logger *slog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(writer DocumentWriter, logger *slog.Logger) *Generator {
	return &Generator{writer: writer, logger: logger}
}

// Generate runs both passes for every currency in the workbook's
// Currencies sheet. On an aggregation data gap the partially-built
// document is trashed before the error propagates.
func (g *Generator) Generate(ctx context.Context, wb Workbook) error {
	for _, currency := range wb.Currencies {
		if err := g.generateOne(ctx, wb, currency, "expense report", wb.Expenses); err != nil {
			return err
		}
		if err := g.generateOne(ctx, wb, currency, "revenue report", wb.Revenues); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateOne(ctx context.Context, wb Workbook, currency model.Currency, kind string, in Input) error {
	title := fmt.Sprintf("%s %s (%s)", wb.Name, kind, currency.Code)

	documentID, err := g.writer.CreateDocument(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", title, err)
	}

	rows, err := Aggregate(in, currency.Code)
	if err != nil {
		if trashErr := g.writer.TrashDocument(ctx, documentID); trashErr != nil {
			g.logger.Warn("failed to trash incomplete report", "document_id", documentID, "error", trashErr)
		}
		return err
	}

	if err := g.writer.WriteRows(ctx, documentID, Header, rows, currency.DecimalPlaces); err != nil {
		return fmt.Errorf("failed to write %q: %w", title, err)
	}

	if err := g.writer.MoveToFolder(ctx, documentID); err != nil {
		return fmt.Errorf("failed to file %q: %w", title, err)
	}

	g.logger.Info("report generated",
		"title", title,
		"rows", len(rows),
		"document_id", documentID)

	return nil
}
