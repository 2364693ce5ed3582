// Package amount turns free-form monetary input into whole currency units.
//
// All money in the ledger is an int64 count of whole units. Input coming
// from forms may carry thousands separators, a currency sign or a
// fractional part; Normalize strips the decoration and rounds half away
// from zero.
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when the cleaned input is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// maxAmount bounds accepted input well inside int64.
var maxAmount = decimal.New(1, 15)

// Normalize parses raw into whole currency units. Empty input yields def.
func Normalize(raw string, def int64) (int64, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return def, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if d.Abs().GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}
	return d.Round(0).IntPart(), nil
}

// FromFloat rounds a numeric input to whole units.
func FromFloat(v float64) (int64, error) {
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalidAmount, v)
	}
	return d.Round(0).IntPart(), nil
}

// Positive is Normalize for fields that must hold a strictly positive amount.
func Positive(raw string) (int64, error) {
	v, err := Normalize(raw, 0)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, raw)
	}
	return v, nil
}

func clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
