package balance

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// NativeDecimals is the number of decimal places of the chain's native
// balance unit on the default development node.
const NativeDecimals = 12

// ErrInvalidAmount reports a balance string that is not a non-negative
// integer or decimal amount.
var ErrInvalidAmount = errors.New("invalid balance amount")

var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Parse converts a user-supplied amount in the native balance unit into
// base units. Accepts plain integers ("1000") and decimal form ("1.25").
func Parse(raw string, decimals int) (*big.Int, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if decimals < 0 {
		return nil, fmt.Errorf("%w: decimals must be >= 0", ErrInvalidAmount)
	}
	if !decimalPattern.MatchString(clean) {
		return nil, fmt.Errorf("%w: %q must be a non-negative amount like 10 or 1.25", ErrInvalidAmount, raw)
	}

	if !strings.Contains(clean, ".") {
		value, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		return value.Mul(value, scale), nil
	}

	parts := strings.SplitN(clean, ".", 2)
	intPart, fracPart := parts[0], parts[1]
	if len(fracPart) > decimals {
		return nil, fmt.Errorf("%w: decimal precision exceeds native decimals (%d)", ErrInvalidAmount, decimals)
	}
	fracPart = fracPart + strings.Repeat("0", decimals-len(fracPart))
	combined := strings.TrimLeft(intPart+fracPart, "0")
	if combined == "" {
		return big.NewInt(0), nil
	}
	value, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return value, nil
}

// Format renders a base-unit amount as a decimal string in the native
// balance unit, trimming trailing zeros.
func Format(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	s := amount.String()
	if decimals == 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	intPart := s[:len(s)-decimals]
	fracPart := strings.TrimRight(s[len(s)-decimals:], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}
