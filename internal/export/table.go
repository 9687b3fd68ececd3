// Package export serializes a transaction collection into a spreadsheet.
package export

import (
	"fmt"
	"time"

	"github.com/Veraticus/txscope/internal/format"
	"github.com/Veraticus/txscope/internal/model"
)

// SheetName is the name of the single worksheet in every export.
const SheetName = "Transactions"

// Column describes one exported column.
type Column struct {
	Value  func(model.Transaction) string
	Header string
	// Width is measured in characters.
	Width float64
}

// Table is the tabular form of an export, independent of the output medium.
type Table struct {
	SheetName string
	Columns   []Column
	Rows      [][]string
}

// Headers returns the column headers in order.
func (t Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Columns returns the export columns in output order.
func Columns() []Column {
	return []Column{
		{Header: "Transaction Hash", Width: 70, Value: func(t model.Transaction) string { return t.Hash }},
		{Header: "From Address", Width: 45, Value: func(t model.Transaction) string { return t.FromAddress }},
		{Header: "To Address", Width: 45, Value: func(t model.Transaction) string { return t.ToAddress }},
		{Header: "Amount", Width: 15, Value: func(t model.Transaction) string { return format.AmountFixed6(t.Amount) }},
		{Header: "Status", Width: 12, Value: func(t model.Transaction) string { return t.Status.Title() }},
		{Header: "Gas Limit", Width: 12, Value: func(t model.Transaction) string { return orNotAvailable(t.GasLimit) }},
		{Header: "Gas Price", Width: 15, Value: func(t model.Transaction) string { return orNotAvailable(t.GasPrice) }},
		{Header: "Transaction Fee", Width: 18, Value: func(t model.Transaction) string { return format.Fee(t.GasLimit, t.GasPrice) }},
		{Header: "Timestamp", Width: 25, Value: func(t model.Transaction) string {
			at, ok := t.EffectiveTime()
			return format.FullTimestamp(at, ok)
		}},
		{Header: "Raw Timestamp", Width: 28, Value: func(t model.Transaction) string {
			return orNotAvailable(t.EffectiveTimeString())
		}},
	}
}

// BuildTable maps transactions to export rows, one per transaction, in input order.
func BuildTable(transactions []model.Transaction) Table {
	columns := Columns()
	rows := make([][]string, len(transactions))
	for i, t := range transactions {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = c.Value(t)
		}
		rows[i] = row
	}
	return Table{SheetName: SheetName, Columns: columns, Rows: rows}
}

// DefaultFilename returns transactions-YYYY-MM-DD.xlsx for the given day.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("transactions-%s.xlsx", now.Format("2006-01-02"))
}

func orNotAvailable(s string) string {
	if s == "" {
		return format.NotAvailable
	}
	return s
}
