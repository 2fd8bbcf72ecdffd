package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frousseau/sheetkeeper/internal/cli"
	"github.com/frousseau/sheetkeeper/internal/config"
	"github.com/frousseau/sheetkeeper/internal/model"
	"github.com/frousseau/sheetkeeper/internal/rates"
	"github.com/frousseau/sheetkeeper/internal/sheets"
	"github.com/frousseau/sheetkeeper/internal/storage"
)

// cachePadding extends cache reads past the requested interval so the
// reconciler has neighbors for boundary gaps.
const cachePadding = 7 * 24 * time.Hour

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Maintain the exchange-rate sheet",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Fetch daily rates and rewrite the Exchange rates sheet",
		Long: `Fetch daily exchange rates from the fiat and crypto sources for the
requested interval, fill trading gaps by interpolation, and replace the
Exchange rates sheet with the result.

Without --from/--to the interval comes from the workbook's Reporting
period sheet. Observations are cached locally; --refresh forces a
re-fetch even when cached data exists.`,
		RunE: runRatesUpdate,
	}
	update.Flags().String("from", "", "First day of the interval (YYYY-MM-DD)")
	update.Flags().String("to", "", "Last day of the interval (YYYY-MM-DD)")
	update.Flags().Bool("refresh", false, "Re-fetch from the sources even when cached")
	_ = viper.BindPFlag("rates.from", update.Flags().Lookup("from"))
	_ = viper.BindPFlag("rates.to", update.Flags().Lookup("to"))
	_ = viper.BindPFlag("rates.refresh", update.Flags().Lookup("refresh"))

	cmd.AddCommand(update)

	return cmd
}

func runRatesUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, app, err := newClient(ctx)
	if err != nil {
		return err
	}

	from, to, err := resolveInterval(ctx, client)
	if err != nil {
		return err
	}
	if to.Before(from) {
		return fmt.Errorf("interval ends before it starts: %s to %s", model.Day(from), model.Day(to))
	}

	store, err := storage.NewSQLiteStorage(app.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open rate cache: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("failed to close rate cache", "error", closeErr)
		}
	}()

	slog.Info(cli.FormatTitle("Updating exchange rates..."),
		"from", model.Day(from),
		"to", model.Day(to))

	sources := rateSources(app)
	refresh := viper.GetBool("rates.refresh")

	bar := progressbar.Default(int64(len(sources)), "fetching rates")
	columns := make([]sheets.RateColumn, 0, len(sources))
	for _, src := range sources {
		sparse, err := loadObservations(ctx, store, src.fetcher, from, to, refresh)
		if err != nil {
			return err
		}
		columns = append(columns, sheets.RateColumn{
			Name:   src.column,
			Series: rates.Reconcile(sparse, from, to),
		})
		_ = bar.Add(1)
	}

	if err := client.UpdateExchangeRates(ctx, columns); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Exchange rates updated"))

	return nil
}

type rateSource struct {
	fetcher rates.Fetcher
	column  string
}

func rateSources(app *config.App) []rateSource {
	// The fiat source comes first: conversion formulas in the ledger look
	// up column B of the Exchange rates sheet.
	return []rateSource{
		{
			fetcher: rates.NewFiatClient(rates.FiatConfig{
				BaseURL:    app.FiatBaseURL,
				SeriesCode: app.FiatSeriesCode,
			}),
			column: app.FiatColumn,
		},
		{
			fetcher: rates.NewCryptoClient(rates.CryptoConfig{
				BaseURL:   app.CryptoBaseURL,
				AssetID:   app.CryptoAssetID,
				ConvertID: app.CryptoConvert,
			}),
			column: app.CryptoColumn,
		},
	}
}

// loadObservations serves one source from the cache, falling back to the
// network when the cache has nothing for the interval.
func loadObservations(ctx context.Context, store *storage.SQLiteStorage, fetcher rates.Fetcher, from, to time.Time, refresh bool) (model.RateSeries, error) {
	cached, err := store.GetRates(ctx, fetcher.Source(), from.Add(-cachePadding), to.Add(cachePadding))
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 && !refresh {
		slog.Debug("rate cache hit", "source", fetcher.Source(), "observations", len(cached))
		return cached, nil
	}

	fetched, err := fetcher.Fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if err := store.SaveRates(ctx, fetcher.Source(), fetched); err != nil {
		return nil, err
	}
	slog.Debug("rates fetched", "source", fetcher.Source(), "observations", len(fetched))

	return fetched, nil
}

func resolveInterval(ctx context.Context, client *sheets.Client) (time.Time, time.Time, error) {
	fromFlag := viper.GetString("rates.from")
	toFlag := viper.GetString("rates.to")

	if fromFlag == "" && toFlag == "" {
		return client.ReportingPeriod(ctx)
	}
	if fromFlag == "" || toFlag == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be set together")
	}

	from, err := time.Parse(model.DateFormat, fromFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", fromFlag, err)
	}
	to, err := time.Parse(model.DateFormat, toFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", toFlag, err)
	}

	return from, to, nil
}
