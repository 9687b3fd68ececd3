package sheets

import (
	"context"

	"github.com/Veraticus/txscope/internal/export"
)

// Publisher uploads an export table to a spreadsheet service.
type Publisher interface {
	Publish(ctx context.Context, table export.Table) (Result, error)
}

// Result describes a completed publish.
type Result struct {
	SpreadsheetID  string
	SpreadsheetURL string
	RowsWritten    int
}

// charWidthPixels approximates the rendered width of one character in the default font.
const charWidthPixels = 7

// ColumnPixels converts a width in characters into a Sheets pixel size.
func ColumnPixels(chars float64) int64 {
	return int64(chars*charWidthPixels) + 5
}
