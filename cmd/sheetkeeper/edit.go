package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frousseau/sheetkeeper/internal/cli"
	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/react"
	"github.com/frousseau/sheetkeeper/internal/tabular"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "React to ledger edits",
	}

	apply := &cobra.Command{
		Use:   "apply",
		Short: "Run the edit rules for one cell and apply the resulting writes",
		Long: `Replay an edit against the reaction rules: filling supplier defaults,
writing tax and currency-conversion formulas, and clearing derived cells
when a subtotal is emptied. Edits no rule matches are a no-op.

The cell's current content is used as the edited value unless --value
overrides it.`,
		RunE: runEditApply,
	}
	apply.Flags().String("sheet", model.SheetExpenses, "Sheet holding the edited cell")
	apply.Flags().Int("row", 0, "1-based row of the edited cell")
	apply.Flags().String("column", "", "Header of the edited column")
	apply.Flags().String("value", "", "Edited value (default: the cell's current content)")
	_ = apply.MarkFlagRequired("row")
	_ = apply.MarkFlagRequired("column")
	_ = viper.BindPFlag("edit.sheet", apply.Flags().Lookup("sheet"))
	_ = viper.BindPFlag("edit.row", apply.Flags().Lookup("row"))
	_ = viper.BindPFlag("edit.column", apply.Flags().Lookup("column"))
	_ = viper.BindPFlag("edit.value", apply.Flags().Lookup("value"))

	cmd.AddCommand(apply)

	return cmd
}

func runEditApply(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, app, err := newClient(ctx)
	if err != nil {
		return err
	}

	sheetName := viper.GetString("edit.sheet")
	row := viper.GetInt("edit.row")
	columnHeader := viper.GetString("edit.column")

	rows, err := client.Snapshot(ctx, sheetName)
	if err != nil {
		return err
	}
	columns := tabular.HeaderIndex(rows)
	column, ok := columns[columnHeader]
	if !ok {
		return fmt.Errorf("no %q column in %s", columnHeader, sheetName)
	}
	if row < 2 || row > len(rows) {
		return fmt.Errorf("row %d is outside %s", row, sheetName)
	}

	cell := common.CellRef{Sheet: sheetName, Row: row, Column: column}
	content, isFormula, err := client.CellContent(ctx, sheetName, cell.A1())
	if err != nil {
		return err
	}
	value := content
	if cmd.Flags().Changed("value") {
		value = viper.GetString("edit.value")
		isFormula = false
	}

	suppliers, taxes, err := client.LoadReference(ctx)
	if err != nil {
		return err
	}

	reactor := react.New(app.BaseCurrency, suppliers, taxes)
	writes := reactor.React(react.Edit{
		Sheet:     sheetName,
		Column:    columnHeader,
		NewValue:  value,
		Row:       row,
		IsFormula: isFormula,
	}, react.RowContext{Columns: columns, Row: rows[row-1]})

	if len(writes) == 0 {
		slog.Info("no rule matched", "cell", cell.String())
		return nil
	}

	if err := client.Apply(ctx, writes); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Edit applied"), "cell", cell.String(), "writes", len(writes))

	return nil
}
