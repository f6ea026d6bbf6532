package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrPrecision means an amount has more fractional digits than its
	// currency's minor unit allows.
	ErrPrecision = errors.New("amount finer than minor unit")
	// ErrNegative means a negative amount where only >= 0 is allowed.
	ErrNegative = errors.New("amount is negative")
	// ErrNoParts means a split over zero (or fewer) parts.
	ErrNoParts = errors.New("split needs at least one part")
)

// FitsScale reports whether d has at most scale fractional digits.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Truncate(scale))
}

// Parse reads a plain decimal string ("1500", "12.50") and checks it
// against the minor-unit scale.
func Parse(s string, scale int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !FitsScale(d, scale) {
		return decimal.Zero, fmt.Errorf("amount %s has more than %d decimal places: %w", d, scale, ErrPrecision)
	}
	return d, nil
}

// ToMinor converts d to integer minor units at scale. d must fit the scale.
func ToMinor(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Shift(scale)
}

// FromMinor converts integer minor units back to a decimal amount.
func FromMinor(units decimal.Decimal, scale int32) decimal.Decimal {
	return units.Shift(-scale)
}

// Split divides amount into n shares in integer minor units. Each share gets
// floor(units/n); the remaining units go one each to the first shares, so
// the shares always sum to exactly amount.
func Split(amount decimal.Decimal, n int, scale int32) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, ErrNoParts
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("splitting %s: %w", amount, ErrNegative)
	}
	if !FitsScale(amount, scale) {
		return nil, fmt.Errorf("splitting %s at scale %d: %w", amount, scale, ErrPrecision)
	}

	q, r := ToMinor(amount, scale).QuoRem(decimal.NewFromInt(int64(n)), 0)
	extra := int(r.IntPart())

	base := FromMinor(q, scale)
	bumped := base.Add(decimal.New(1, -scale))

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		if i < extra {
			shares[i] = bumped
		} else {
			shares[i] = base
		}
	}
	return shares, nil
}

// Convert applies a fixed exchange rate and rounds to the target scale.
func Convert(amount, rate decimal.Decimal, scale int32) decimal.Decimal {
	return amount.Mul(rate).Round(scale)
}

// ConvertBack undoes Convert: amount / rate rounded to the target scale.
func ConvertBack(amount, rate decimal.Decimal, scale int32) decimal.Decimal {
	return amount.DivRound(rate, scale)
}
