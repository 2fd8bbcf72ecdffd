// Package config loads application configuration from Viper and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/frousseau/sheetkeeper/internal/sheets"
)

// App holds the settings shared by every command beyond the Google
// client config: the storage folder, the upload web-app URL, the base
// accounting currency, and the rate-source parameters. Loaded once at
// startup and immutable afterwards.
type App struct {
	FolderID       string
	WebAppURL      string
	BaseCurrency   string
	TimeZone       string
	CachePath      string
	CryptoBaseURL  string
	CryptoAssetID  int
	CryptoConvert  int
	CryptoColumn   string
	FiatBaseURL    string
	FiatSeriesCode string
	FiatColumn     string
}

// LoadApp reads the application settings, applying defaults where the
// configuration is silent.
func LoadApp() (*App, error) {
	app := &App{
		FolderID:       viper.GetString("drive.folder_id"),
		WebAppURL:      viper.GetString("drive.web_app_url"),
		BaseCurrency:   viper.GetString("base_currency"),
		TimeZone:       viper.GetString("timezone"),
		CachePath:      ExpandPath(viper.GetString("rates.cache_path")),
		CryptoBaseURL:  viper.GetString("rates.crypto.base_url"),
		CryptoAssetID:  viper.GetInt("rates.crypto.asset_id"),
		CryptoConvert:  viper.GetInt("rates.crypto.convert_id"),
		CryptoColumn:   viper.GetString("rates.crypto.column"),
		FiatBaseURL:    viper.GetString("rates.fiat.base_url"),
		FiatSeriesCode: viper.GetString("rates.fiat.series_code"),
		FiatColumn:     viper.GetString("rates.fiat.column"),
	}

	if app.BaseCurrency == "" {
		app.BaseCurrency = "CAD"
	}
	if app.TimeZone == "" {
		app.TimeZone = "America/Montreal"
	}
	if app.CachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		app.CachePath = filepath.Join(home, ".local", "share", "sheetkeeper", "rates.db")
	}
	if app.CryptoBaseURL == "" {
		app.CryptoBaseURL = "https://api.coinmarketcap.com/data-api/v3/cryptocurrency/historical"
	}
	if app.CryptoAssetID == 0 {
		app.CryptoAssetID = 1 // BTC
	}
	if app.CryptoConvert == 0 {
		app.CryptoConvert = 2784 // CAD
	}
	if app.FiatBaseURL == "" {
		app.FiatBaseURL = "https://www.bankofcanada.ca/valet/observations"
	}
	if app.FiatSeriesCode == "" {
		app.FiatSeriesCode = "FXUSDCAD"
	}
	if app.FiatColumn == "" {
		app.FiatColumn = "USD"
	}
	if app.CryptoColumn == "" {
		app.CryptoColumn = "BTC"
	}

	if app.FolderID == "" {
		app.FolderID = os.Getenv("GOOGLE_DRIVE_FOLDER_ID")
	}
	if app.FolderID == "" {
		return nil, fmt.Errorf("drive.folder_id is required")
	}

	return app, nil
}

// LoadSheetsConfig loads the Google Sheets client configuration from
// Viper and environment variables. Precedence:
// 1. Viper configuration (config file or SHEETKEEPER_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("timezone"); v != "" {
		config.TimeZone = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	config.FolderID = viper.GetString("drive.folder_id")
	if config.FolderID == "" {
		config.FolderID = os.Getenv("GOOGLE_DRIVE_FOLDER_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
