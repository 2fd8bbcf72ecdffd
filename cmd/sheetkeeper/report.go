package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frousseau/sheetkeeper/internal/cli"
	"github.com/frousseau/sheetkeeper/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate accountant reports",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate expense and revenue reports per currency",
		Long: `Read the ledger sheets and produce one expense report and one revenue
report document for each currency in the Currencies sheet, filed into
the configured Drive folder.`,
		RunE: runReportGenerate,
	}
	generate.Flags().String("base-currency", "", "Base accounting currency (default: configured value)")
	_ = viper.BindPFlag("report.base_currency", generate.Flags().Lookup("base-currency"))

	cmd.AddCommand(generate)

	return cmd
}

func runReportGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, app, err := newClient(ctx)
	if err != nil {
		return err
	}

	baseCurrency := viper.GetString("report.base_currency")
	if baseCurrency == "" {
		baseCurrency = app.BaseCurrency
	}

	slog.Info(cli.FormatTitle("Generating reports..."), "base_currency", baseCurrency)

	workbook, err := client.LoadWorkbook(ctx, baseCurrency)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(client, slog.Default())
	if err := generator.Generate(ctx, workbook); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Reports generated"),
		"workbook", workbook.Name,
		"currencies", len(workbook.Currencies))

	return nil
}
