// Package validate checks user input before it is sent to the transaction API.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/txscope/internal/model"
)

// Validation errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidGas     = errors.New("invalid gas value")
	ErrSameAddress    = errors.New("from and to addresses must differ")
)

// maxAmountDecimals is the precision of the smallest Ether unit.
const maxAmountDecimals = 18

// FieldError reports which input field failed.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Address checks for a 0x-prefixed, 20-byte hex address.
func Address(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidAddress)
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("%w: %q must start with 0x", ErrInvalidAddress, s)
	}
	if !common.IsHexAddress(s) {
		return fmt.Errorf("%w: %q is not a 20-byte hex address", ErrInvalidAddress, s)
	}
	return nil
}

// Amount checks for a positive decimal with at most 18 fractional digits.
func Amount(s string) error {
	d, err := parseDecimal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if !d.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if -d.Exponent() > maxAmountDecimals {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, maxAmountDecimals)
	}
	return nil
}

// GasValue checks an optional gas limit or price. Empty is allowed.
func GasValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := parseDecimal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidGas)
	}
	return nil
}

// CreateRequest validates every field of req and returns the first failure per field,
// joined. The result is nil when req is valid.
func CreateRequest(req model.CreateRequest) error {
	var errs []error
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Err: err})
		}
	}

	add("fromAddress", Address(req.FromAddress))
	add("toAddress", Address(req.ToAddress))
	add("amount", Amount(req.Amount))
	add("gasLimit", GasValue(req.GasLimit))
	add("gasPrice", GasValue(req.GasPrice))

	if len(errs) == 0 && sameAddress(req.FromAddress, req.ToAddress) {
		add("toAddress", ErrSameAddress)
	}

	return errors.Join(errs...)
}

// FieldErrors maps each failing field to its error.
func FieldErrors(err error) map[string]error {
	out := map[string]error{}
	if err == nil {
		return out
	}

	var collect func(error)
	collect = func(e error) {
		var fe *FieldError
		if errors.As(e, &fe) {
			if _, seen := out[fe.Field]; !seen {
				out[fe.Field] = fe.Err
			}
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				collect(inner)
			}
		}
	}
	collect(err)
	return out
}

// Normalize trims whitespace from every field.
func Normalize(req model.CreateRequest) model.CreateRequest {
	return model.CreateRequest{
		FromAddress: strings.TrimSpace(req.FromAddress),
		ToAddress:   strings.TrimSpace(req.ToAddress),
		Amount:      strings.TrimSpace(req.Amount),
		GasLimit:    strings.TrimSpace(req.GasLimit),
		GasPrice:    strings.TrimSpace(req.GasPrice),
	}
}

func sameAddress(a, b string) bool {
	return common.HexToAddress(strings.TrimSpace(a)) == common.HexToAddress(strings.TrimSpace(b))
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("value is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}
