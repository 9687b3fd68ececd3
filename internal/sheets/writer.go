package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/export"
	"github.com/Veraticus/txscope/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer publishes export tables to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets publisher.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(service, config, logger), nil
}

// NewWriterWithService wraps an already configured Sheets service.
func NewWriterWithService(service *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}
}

// Publish replaces the contents of the export sheet with table.
func (w *Writer) Publish(ctx context.Context, table export.Table) (Result, error) {
	w.logger.Info("publishing to google sheets",
		"rows", len(table.Rows),
		"sheet", table.SheetName)

	retryOpts := service.RetryOptions{
		MaxAttempts:  max(1, w.config.RetryAttempts),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var target spreadsheetTarget
	err := common.WithRetry(ctx, func() error {
		var getErr error
		target, getErr = w.getOrCreateSpreadsheet(ctx, table.SheetName)
		return classify(getErr)
	}, retryOpts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	err = common.WithRetry(ctx, func() error {
		return classify(w.clearSheet(ctx, target.id, table.SheetName))
	}, retryOpts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareValues(table)
	for start := 0; start < len(values); start += w.config.BatchSize {
		end := min(start+w.config.BatchSize, len(values))
		batch := values[start:end]
		err = common.WithRetry(ctx, func() error {
			return classify(w.writeBatch(ctx, target.id, table.SheetName, start, batch))
		}, retryOpts)
		if err != nil {
			return Result{}, fmt.Errorf("failed to write data: %w", err)
		}
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classify(w.applyFormatting(ctx, target.id, target.sheetID, table))
		}, retryOpts)
		if err != nil {
			// Data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("published to google sheets",
		"spreadsheet_id", target.id,
		"rows_written", len(table.Rows))

	return Result{
		SpreadsheetID:  target.id,
		SpreadsheetURL: target.url,
		RowsWritten:    len(table.Rows),
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch config.AuthMethod() {
	case AuthServiceAccount:
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	case AuthOAuth:
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	default:
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return nil, ErrNoCredentials
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

type spreadsheetTarget struct {
	id      string
	url     string
	sheetID int64
}

// getOrCreateSpreadsheet resolves the configured spreadsheet, creating it or the named
// sheet when missing.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context, sheetName string) (spreadsheetTarget, error) {
	if w.config.SpreadsheetID == "" {
		return w.createSpreadsheet(ctx, sheetName)
	}

	existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return spreadsheetTarget{}, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}

	target := spreadsheetTarget{id: existing.SpreadsheetId, url: existing.SpreadsheetUrl}
	for _, s := range existing.Sheets {
		if s.Properties != nil && s.Properties.Title == sheetName {
			target.sheetID = s.Properties.SheetId
			return target, nil
		}
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(existing.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return spreadsheetTarget{}, fmt.Errorf("unable to add sheet %q: %w", sheetName, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		target.sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	w.logger.Info("added sheet", "spreadsheet_id", target.id, "sheet", sheetName)

	return target, nil
}

func (w *Writer) createSpreadsheet(ctx context.Context, sheetName string) (spreadsheetTarget, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: sheetName,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return spreadsheetTarget{}, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	target := spreadsheetTarget{id: created.SpreadsheetId, url: created.SpreadsheetUrl}
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		target.sheetID = created.Sheets[0].Properties.SheetId
	}

	// Reuse the new spreadsheet on retries instead of creating another one.
	w.config.SpreadsheetID = created.SpreadsheetId

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return target, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, sheetName+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareValues lays out the header row followed by the data rows.
func prepareValues(table export.Table) [][]any {
	values := make([][]any, 0, len(table.Rows)+1)

	header := make([]any, len(table.Columns))
	for i, h := range table.Headers() {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range table.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}

	return values
}

// writeBatch writes rows starting at the zero-based row offset.
func (w *Writer) writeBatch(ctx context.Context, spreadsheetID, sheetName string, offset int, batch [][]any) error {
	rangeStr := fmt.Sprintf("%s!A%d", sheetName, offset+1)
	_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write batch starting at row %d: %w", offset+1, err)
	}

	w.logger.Debug("wrote batch", "start_row", offset+1, "rows", len(batch))
	return nil
}

// formattingRequests bolds the header, freezes it and sizes each column.
func formattingRequests(sheetID int64, table export.Table) []*sheets.Request {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(table.Columns)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	for i, c := range table.Columns {
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(i),
					EndIndex:   int64(i + 1),
				},
				Properties: &sheets.DimensionProperties{
					PixelSize: ColumnPixels(c.Width),
				},
				Fields: "pixelSize",
			},
		})
	}

	return requests
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, table export.Table) error {
	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: formattingRequests(sheetID, table),
	}).Context(ctx).Do()
	return err
}

// classify marks client errors as permanent so WithRetry gives up immediately.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return common.Permanent(err)
		}
	}
	return err
}
