package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/txscope/internal/export"
	"github.com/Veraticus/txscope/internal/model"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	getSpreadsheet    = regexp.MustCompile(`/v4/spreadsheets/sheet-123(\?|$)`)
	createSpreadsheet = regexp.MustCompile(`/v4/spreadsheets(\?|$)`)
	clearValues       = regexp.MustCompile(`:clear`)
	updateValues      = regexp.MustCompile(`/values/`)
	batchUpdate       = regexp.MustCompile(`:batchUpdate`)
)

func testTable(rows int) export.Table {
	transactions := make([]model.Transaction, rows)
	for i := range transactions {
		transactions[i] = model.Transaction{
			Hash:   "0xhash",
			Amount: "1",
			Status: model.StatusConfirmed,
		}
	}
	return export.BuildTable(transactions)
}

func newTestWriter(t *testing.T, transport *httpmock.MockTransport, config Config) *Writer {
	t.Helper()
	srv, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return NewWriterWithService(srv, config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() Config {
	config := DefaultConfig()
	config.ServiceAccountPath = "/unused.json"
	config.SpreadsheetID = "sheet-123"
	config.RetryDelay = time.Millisecond
	return config
}

type valueRecorder struct {
	ranges []string
	rows   int
	mu     sync.Mutex
}

func (v *valueRecorder) responder(req *http.Request) (*http.Response, error) {
	var body sheets.ValueRange
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
	}
	v.mu.Lock()
	v.ranges = append(v.ranges, req.URL.Path)
	v.rows += len(body.Values)
	v.mu.Unlock()
	return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"updatedRows": len(body.Values)})
}

func existingSpreadsheet(sheetID int64) httpmock.Responder {
	return httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
		"spreadsheetId":  "sheet-123",
		"spreadsheetUrl": "https://docs.google.com/spreadsheets/d/sheet-123",
		"sheets": []map[string]any{
			{"properties": map[string]any{"sheetId": 0, "title": "Other"}},
			{"properties": map[string]any{"sheetId": sheetID, "title": export.SheetName}},
		},
	})
}

func TestWriter_PublishExistingSpreadsheet(t *testing.T) {
	transport := httpmock.NewMockTransport()
	values := &valueRecorder{}

	var formatting sheets.BatchUpdateSpreadsheetRequest
	transport.RegisterRegexpResponder(http.MethodGet, getSpreadsheet, existingSpreadsheet(42))
	transport.RegisterRegexpResponder(http.MethodPost, clearValues,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{}))
	transport.RegisterRegexpResponder(http.MethodPut, updateValues, values.responder)
	transport.RegisterRegexpResponder(http.MethodPost, batchUpdate, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&formatting); err != nil {
			return nil, err
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"spreadsheetId": "sheet-123"})
	})

	config := testConfig()
	config.BatchSize = 2
	w := newTestWriter(t, transport, config)

	result, err := w.Publish(context.Background(), testTable(3))
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", result.SpreadsheetID)
	assert.Equal(t, 3, result.RowsWritten)
	assert.Contains(t, result.SpreadsheetURL, "sheet-123")

	// Header plus three rows in batches of two.
	assert.Equal(t, 4, values.rows)
	assert.Len(t, values.ranges, 2)

	require.Len(t, formatting.Requests, 2+len(export.Columns()))
	assert.Equal(t, int64(42), formatting.Requests[0].RepeatCell.Range.SheetId)
	assert.Equal(t, int64(1), formatting.Requests[1].UpdateSheetProperties.Properties.GridProperties.FrozenRowCount)
	assert.Equal(t, ColumnPixels(70), formatting.Requests[2].UpdateDimensionProperties.Properties.PixelSize)
}

func TestWriter_PublishCreatesSpreadsheet(t *testing.T) {
	transport := httpmock.NewMockTransport()
	values := &valueRecorder{}

	transport.RegisterRegexpResponder(http.MethodPost, createSpreadsheet,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"spreadsheetId":  "new-sheet",
			"spreadsheetUrl": "https://docs.google.com/spreadsheets/d/new-sheet",
			"sheets": []map[string]any{
				{"properties": map[string]any{"sheetId": 7, "title": export.SheetName}},
			},
		}))
	transport.RegisterRegexpResponder(http.MethodPost, clearValues,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{}))
	transport.RegisterRegexpResponder(http.MethodPut, updateValues, values.responder)
	transport.RegisterRegexpResponder(http.MethodPost, batchUpdate,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{}))

	config := testConfig()
	config.SpreadsheetID = ""
	w := newTestWriter(t, transport, config)

	result, err := w.Publish(context.Background(), testTable(1))
	require.NoError(t, err)

	assert.Equal(t, "new-sheet", result.SpreadsheetID)
	assert.Equal(t, 2, values.rows)
}

func TestWriter_PublishRetriesServerErrors(t *testing.T) {
	transport := httpmock.NewMockTransport()
	values := &valueRecorder{}

	transport.RegisterRegexpResponder(http.MethodGet, getSpreadsheet, existingSpreadsheet(0))
	transport.RegisterRegexpResponder(http.MethodPost, clearValues,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"error":{"code":503,"message":"busy"}}`).
			Then(httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{})))
	transport.RegisterRegexpResponder(http.MethodPut, updateValues, values.responder)
	transport.RegisterRegexpResponder(http.MethodPost, batchUpdate,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{}))

	w := newTestWriter(t, transport, testConfig())

	_, err := w.Publish(context.Background(), testTable(2))
	require.NoError(t, err)
	assert.Equal(t, 3, values.rows)
}

func TestWriter_PublishDoesNotRetryClientErrors(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterRegexpResponder(http.MethodGet, getSpreadsheet,
		httpmock.NewStringResponder(http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`))

	w := newTestWriter(t, transport, testConfig())

	_, err := w.Publish(context.Background(), testTable(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get spreadsheet")
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestWriter_FormattingFailureIsNotFatal(t *testing.T) {
	transport := httpmock.NewMockTransport()
	values := &valueRecorder{}

	transport.RegisterRegexpResponder(http.MethodGet, getSpreadsheet, existingSpreadsheet(0))
	transport.RegisterRegexpResponder(http.MethodPost, clearValues,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{}))
	transport.RegisterRegexpResponder(http.MethodPut, updateValues, values.responder)
	transport.RegisterRegexpResponder(http.MethodPost, batchUpdate,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":{"code":400,"message":"bad"}}`))

	w := newTestWriter(t, transport, testConfig())

	result, err := w.Publish(context.Background(), testTable(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsWritten)
}

func TestPrepareValues(t *testing.T) {
	values := prepareValues(testTable(2))

	require.Len(t, values, 3)
	assert.Equal(t, "Transaction Hash", values[0][0])
	assert.Equal(t, "0xhash", values[1][0])
	assert.Equal(t, "Confirmed", values[2][4])
}

func TestColumnPixels(t *testing.T) {
	assert.Equal(t, int64(495), ColumnPixels(70))
	assert.Equal(t, int64(89), ColumnPixels(12))
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()

	result, err := m.Publish(context.Background(), testTable(2))
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsWritten)

	m.SetError(assert.AnError)
	_, err = m.Publish(context.Background(), testTable(1))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, m.CallCount())
}
