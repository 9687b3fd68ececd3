// Package model contains the domain types shared across txscope.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single on-chain transaction as delivered by the transaction API.
// Values are treated as immutable once received.
type Transaction struct {
	ID          string `json:"id"`
	Hash        string `json:"hash"`
	FromAddress string `json:"fromAddress"`
	ToAddress   string `json:"toAddress"`
	Amount      string `json:"amount"`
	Status      Status `json:"status"`

	// Optional fields. Empty means absent.
	GasLimit  string `json:"gasLimit,omitempty"`
	GasPrice  string `json:"gasPrice,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateRequest is the payload for submitting a new transaction.
type CreateRequest struct {
	FromAddress string `json:"fromAddress"`
	ToAddress   string `json:"toAddress"`
	Amount      string `json:"amount"`
	GasLimit    string `json:"gasLimit,omitempty"`
	GasPrice    string `json:"gasPrice,omitempty"`
}

// timeLayouts are tried in order when parsing a transaction time field.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// EffectiveTimeString returns the raw timestamp, falling back to createdAt.
func (t Transaction) EffectiveTimeString() string {
	if t.Timestamp != "" {
		return t.Timestamp
	}
	return t.CreatedAt
}

// EffectiveTime parses the effective time of the transaction.
// The boolean is false when neither field holds a parseable time.
func (t Transaction) EffectiveTime() (time.Time, bool) {
	return ParseTime(t.EffectiveTimeString())
}

// AmountFloat returns the amount as a float, or 0 when it is not a plain decimal
// number. NaN and infinities count as unparseable, matching the export.
func (t Transaction) AmountFloat() float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseTime parses an ISO-8601 time string. Date-only values are read as UTC midnight,
// values without a zone as local time.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, true
	}

	for i, layout := range timeLayouts {
		var (
			parsed time.Time
			err    error
		)
		if i < 2 {
			parsed, err = time.Parse(layout, s)
		} else {
			parsed, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}
