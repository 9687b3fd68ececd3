package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/txscope/internal/model"
	"github.com/xuri/excelize/v2"
)

// ProgressFunc is called after each data row is written.
type ProgressFunc func(done, total int)

// Result reports what an export did.
type Result struct {
	Path    string
	Rows    int
	Written bool
}

// XLSXWriter writes export tables as Excel workbooks.
type XLSXWriter struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures an XLSXWriter.
type Option func(*XLSXWriter)

// WithProgress registers a per-row progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(w *XLSXWriter) {
		w.progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *XLSXWriter) {
		w.logger = logger
	}
}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter(opts ...Option) *XLSXWriter {
	w := &XLSXWriter{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Export writes transactions to filename. An empty collection writes nothing and
// returns a Result with Written false.
func (w *XLSXWriter) Export(ctx context.Context, filename string, transactions []model.Transaction) (Result, error) {
	if len(transactions) == 0 {
		w.logger.Info("nothing to export")
		return Result{Path: filename}, nil
	}

	f, err := w.build(ctx, BuildTable(transactions))
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			w.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return Result{}, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return Result{}, fmt.Errorf("failed to save %s: %w", filename, err)
	}

	w.logger.Info("exported transactions", "path", filename, "rows", len(transactions))

	return Result{Path: filename, Rows: len(transactions), Written: true}, nil
}

// Write streams a workbook for transactions to out. Unlike Export it always writes,
// producing a header-only sheet for an empty collection.
func (w *XLSXWriter) Write(ctx context.Context, out io.Writer, transactions []model.Transaction) error {
	f, err := w.build(ctx, BuildTable(transactions))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			w.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// build lays out table on a fresh workbook.
func (w *XLSXWriter) build(ctx context.Context, table Table) (*excelize.File, error) {
	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		_ = f.Close()
		return nil, err
	}

	if err := f.SetSheetName(f.GetSheetName(0), table.SheetName); err != nil {
		return fail(fmt.Errorf("failed to name sheet: %w", err))
	}

	for i, c := range table.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fail(err)
		}
		if err := f.SetColWidth(table.SheetName, col, col, c.Width); err != nil {
			return fail(fmt.Errorf("failed to set width of column %s: %w", col, err))
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fail(fmt.Errorf("failed to create header style: %w", err))
	}

	if err := setRow(f, table.SheetName, 1, table.Headers()); err != nil {
		return fail(err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(table.Columns))
	if err != nil {
		return fail(err)
	}
	if err := f.SetCellStyle(table.SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fail(fmt.Errorf("failed to style header: %w", err))
	}

	if err := f.SetPanes(table.SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fail(fmt.Errorf("failed to freeze header: %w", err))
	}

	total := len(table.Rows)
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		if err := setRow(f, table.SheetName, i+2, row); err != nil {
			return fail(err)
		}
		if w.progress != nil {
			w.progress(i+1, total)
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
