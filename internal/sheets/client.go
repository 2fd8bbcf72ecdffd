package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets and Drive services for one workbook.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
	logger *slog.Logger
	config Config
}

// NewClient creates an authenticated client.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tokenSource, err := createTokenSource(ctx, config)
	if err != nil {
		return nil, err
	}
	httpClient := oauth2.NewClient(ctx, tokenSource)

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &Client{
		config: config,
		sheets: sheetsService,
		drive:  driveService,
		logger: logger,
	}, nil
}

// createTokenSource builds a token source from either a service account
// key or OAuth2 refresh-token credentials.
func createTokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	scopes := []string{sheets.SpreadsheetsScope, drive.DriveScope}

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		return jwtConfig.TokenSource(ctx), nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
	token := &oauth2.Token{
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
	}

	return oauthConfig.TokenSource(ctx, token), nil
}

// DriveService exposes the underlying Drive service for the receipt filer.
func (c *Client) DriveService() *drive.Service {
	return c.drive
}

// WorkbookName returns the workbook document's title.
func (c *Client) WorkbookName(ctx context.Context) (string, error) {
	spreadsheet, err := c.sheets.Spreadsheets.Get(c.config.SpreadsheetID).
		Fields("properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to access spreadsheet %s: %w", c.config.SpreadsheetID, err)
	}
	return spreadsheet.Properties.Title, nil
}

// Snapshot reads a whole named sheet as raw cell values.
func (c *Client) Snapshot(ctx context.Context, sheetName string) ([][]any, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(c.config.SpreadsheetID, sheetName).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return resp.Values, nil
}

// CellContent reads a single cell's stored content with formulas intact,
// so callers can tell a formula-derived value from a typed one.
func (c *Client) CellContent(ctx context.Context, sheetName, a1 string) (string, bool, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(c.config.SpreadsheetID, fmt.Sprintf("%s!%s", sheetName, a1)).
		ValueRenderOption("FORMULA").
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("failed to read cell %s!%s: %w", sheetName, a1, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", false, nil
	}
	content := fmt.Sprintf("%v", resp.Values[0][0])
	isFormula := len(content) > 0 && content[0] == '='
	return content, isFormula, nil
}
