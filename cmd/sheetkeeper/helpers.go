package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frousseau/sheetkeeper/internal/config"
	"github.com/frousseau/sheetkeeper/internal/sheets"
)

// newClient builds the Google Sheets client plus the application
// settings every command needs.
func newClient(ctx context.Context) (*sheets.Client, *config.App, error) {
	app, err := config.LoadApp()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sheets configuration: %w", err)
	}

	client, err := sheets.NewClient(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return client, app, nil
}

func loadLocation(app *config.App) *time.Location {
	location, err := time.LoadLocation(app.TimeZone)
	if err != nil {
		slog.Warn("invalid timezone, falling back to UTC", "timezone", app.TimeZone)
		return time.UTC
	}
	return location
}
