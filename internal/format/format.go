// Package format converts raw transaction field values into display strings.
// Every function degrades to a placeholder instead of failing.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown for absent or unparseable values.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// Decimal parses a decimal string. The boolean is false when s is empty or malformed.
func Decimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Amount formats a decimal amount string with a fixed number of decimal places.
func Amount(s string, places int32) string {
	d, ok := Decimal(s)
	if !ok {
		return NotAvailable
	}
	return d.StringFixed(places)
}

// AmountFixed6 formats an amount with six decimal places.
func AmountFixed6(s string) string {
	return Amount(s, 6)
}

// Fee returns gasLimit × gasPrice with eight decimal places, or "0" when either is missing.
func Fee(gasLimit, gasPrice string) string {
	limit, ok := Decimal(gasLimit)
	if !ok {
		return "0"
	}
	price, ok := Decimal(gasPrice)
	if !ok {
		return "0"
	}
	return limit.Mul(price).StringFixed(8)
}

// Gas groups integral gas figures with thousands separators. Fractional values are
// returned as given.
func Gas(s string) string {
	d, ok := Decimal(s)
	if !ok {
		return NotAvailable
	}
	if !d.IsInteger() || !d.BigInt().IsInt64() {
		return strings.TrimSpace(s)
	}
	return printer.Sprintf("%d", d.IntPart())
}

// ShortAddress abbreviates a hex address to 0x1234…abcd.
func ShortAddress(addr string) string {
	return shorten(addr, 6, 4)
}

// ShortHash abbreviates a transaction hash.
func ShortHash(hash string) string {
	return shorten(hash, 10, 4)
}

func shorten(s string, head, tail int) string {
	if s == "" {
		return NotAvailable
	}
	if len(s) <= head+tail+1 {
		return s
	}
	return s[:head] + "…" + s[len(s)-tail:]
}

// ChecksumAddress returns the EIP-55 form of a hex address, or the input unchanged when
// it is not a hex address.
func ChecksumAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}

// Timestamp formats a time for table display.
func Timestamp(t time.Time, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FullTimestamp formats a time with seconds and zone, as used in exports and detail views.
func FullTimestamp(t time.Time, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return t.Local().Format("Jan 2, 2006, 15:04:05 MST")
}

// Age renders the elapsed time between t and now, e.g. "3m ago".
func Age(now, t time.Time, ok bool) string {
	if !ok {
		return NotAvailable
	}
	d := now.Sub(t)
	if d < 0 {
		return "just now"
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
