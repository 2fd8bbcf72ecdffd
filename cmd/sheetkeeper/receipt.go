package main

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frousseau/sheetkeeper/internal/cli"
	"github.com/frousseau/sheetkeeper/internal/config"
	"github.com/frousseau/sheetkeeper/internal/drive"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/react"
	"github.com/frousseau/sheetkeeper/internal/tabular"
)

func receiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "File receipts into Drive",
	}

	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a receipt and link it from its ledger row",
		Long: `Store a receipt file in the workbook's Drive folder under a canonical
name built from the row's date, supplier, and description, then write a
hyperlink to it into the row's receipt cell.`,
		Args: cobra.ExactArgs(1),
		RunE: runReceiptUpload,
	}
	upload.Flags().String("sheet", model.SheetExpenses, "Ledger sheet holding the row")
	upload.Flags().Int("row", 0, "1-based sheet row the receipt belongs to")
	upload.Flags().String("column", model.HeaderReceipt, "Header of the column receiving the link")
	_ = upload.MarkFlagRequired("row")
	_ = viper.BindPFlag("receipt.sheet", upload.Flags().Lookup("sheet"))
	_ = viper.BindPFlag("receipt.row", upload.Flags().Lookup("row"))
	_ = viper.BindPFlag("receipt.column", upload.Flags().Lookup("column"))

	url := &cobra.Command{
		Use:   "url",
		Short: "Print the upload web-app URL",
		RunE:  runReceiptURL,
	}

	cmd.AddCommand(upload)
	cmd.AddCommand(url)

	return cmd
}

func runReceiptUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read receipt file: %w", err)
	}

	client, app, err := newClient(ctx)
	if err != nil {
		return err
	}

	sheetName := viper.GetString("receipt.sheet")
	row := viper.GetInt("receipt.row")
	columnHeader := viper.GetString("receipt.column")

	rows, err := client.Snapshot(ctx, sheetName)
	if err != nil {
		return err
	}
	columns := tabular.HeaderIndex(rows)
	targetColumn, ok := columns[columnHeader]
	if !ok {
		return fmt.Errorf("no %q column in %s", columnHeader, sheetName)
	}
	if row < 2 || row > len(rows) {
		return fmt.Errorf("row %d is outside %s", row, sheetName)
	}

	workbookName, err := client.WorkbookName(ctx)
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Uploading receipt..."),
		"file", filename,
		"sheet", sheetName,
		"row", row)

	filer := drive.NewFiler(drive.NewGoogleAPI(client.DriveService()), app.FolderID, loadLocation(app))
	write, err := filer.Upload(ctx, drive.UploadRequest{
		WorkbookName: workbookName,
		Sheet:        sheetName,
		Filename:     filepath.Base(filename),
		MIMEType:     mimeType(filename),
		Data:         data,
		Columns:      columns,
		RowValues:    rows[row-1],
		Row:          row,
		TargetColumn: targetColumn,
	})
	if err != nil {
		return err
	}

	if err := client.Apply(ctx, []react.CellWrite{write}); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Receipt filed"), "cell", write.Cell.String())

	return nil
}

func runReceiptURL(_ *cobra.Command, _ []string) error {
	app, err := config.LoadApp()
	if err != nil {
		return err
	}
	if app.WebAppURL == "" {
		return fmt.Errorf("drive.web_app_url is not configured")
	}

	fmt.Println(app.WebAppURL)

	return nil
}

func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
