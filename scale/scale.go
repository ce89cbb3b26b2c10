// Package scale converts between human-decimal token quantities and integer
// base units, and between basis points and percentages.
//
// Rounding rule: human values are rounded to base units half away from zero.
// The rule is observable in constructed calldata amounts and must not change.
package scale

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned for human amounts below zero.
var ErrNegativeAmount = errors.New("scale: amount must not be negative")

// ToBaseUnits converts a human-decimal quantity into integer base units for
// a token with the given decimals count. The result is always a non-negative
// integer; fractional base units are rounded half away from zero.
func ToBaseUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, d.String())
	}
	return d.Shift(decimals).Round(0).BigInt(), nil
}

// ToBaseUnitsFloat is the float64 entry point for ToBaseUnits. Non-finite
// inputs are rejected. Callers building calldata should prefer the decimal
// form; floats are for UI-sourced values only.
func ToBaseUnitsFloat(f float64, decimals int32) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("scale: non-finite amount %v", f)
	}
	return ToBaseUnits(decimal.NewFromFloat(f), decimals)
}

// FromBaseUnits converts integer base units back into a human-decimal
// quantity. The conversion is exact; precision is only lost if the caller
// then narrows the result to a float64 (anything beyond ~2^53 base units
// cannot survive that narrowing). Values feeding a transaction must always
// come from the integer path, never from a narrowed float.
func FromBaseUnits(units *big.Int, decimals int32) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -decimals)
}

// BpsToPercent converts integer basis points to a percentage.
func BpsToPercent(bps int64) decimal.Decimal {
	return decimal.New(bps, -2)
}

// PercentToBps converts a percentage to basis points, rounding half away
// from zero. It is the exact inverse of BpsToPercent only when the percent
// is already a multiple of 0.01.
func PercentToBps(pct decimal.Decimal) int64 {
	return pct.Shift(2).Round(0).IntPart()
}

// ParseAmount parses free-form decimal text from an input field. The text is
// sanitized to digits plus at most one decimal separator before parsing;
// empty input or a lone separator is zero, not an error.
func ParseAmount(s string) (decimal.Decimal, error) {
	var b strings.Builder
	seenSep := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenSep:
			b.WriteRune(r)
			seenSep = true
		}
	}

	clean := b.String()
	if clean == "" || clean == "." {
		return decimal.Zero, nil
	}
	clean = strings.TrimSuffix(clean, ".")
	if strings.HasPrefix(clean, ".") {
		clean = "0" + clean
	}
	return decimal.NewFromString(clean)
}
