// Package format provides the display-formatting hooks applied to grid
// cells before they reach the dashboard. Hooks are total and side-effect
// free: a value that is absent or not a number passes through unchanged
// so the caller's missing-data sentinel survives formatting.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Style selects the rendering applied by a formatter.
type Style string

// Recognized styles.
const (
	StyleCurrency Style = "currency"
	StylePercent  Style = "percent"
)

// Options configure a formatter built with New.
type Options struct {
	// Style selects currency or percent rendering.
	Style Style

	// MaxFractionDigits caps the fraction digits shown. Trailing zeros
	// are trimmed, so the output carries at most this many digits.
	MaxFractionDigits int
}

// Hook converts a raw cell value into its display form, or returns the
// value unchanged when it is not numeric.
type Hook func(v any) any

// New builds a Hook from Options. Unknown styles fall back to plain
// decimal rendering with the configured fraction digits.
func New(opts Options) Hook {
	if opts.MaxFractionDigits < 0 {
		opts.MaxFractionDigits = 0
	}
	return func(v any) any {
		d, ok := toDecimal(v)
		if !ok {
			return v
		}
		switch opts.Style {
		case StyleCurrency:
			return formatCurrency(d, opts.MaxFractionDigits)
		case StylePercent:
			return formatPercent(d, opts.MaxFractionDigits)
		default:
			return trimFraction(d.StringFixed(int32(opts.MaxFractionDigits)))
		}
	}
}

// Currency renders a US-dollar amount with thousands grouping and no
// cents: 1234567 -> "$1,234,567". Non-numeric input passes through.
func Currency(v any) any {
	d, ok := toDecimal(v)
	if !ok {
		return v
	}
	return formatCurrency(d, 0)
}

// Percent renders a fraction as a percentage with at most one fraction
// digit: 0.153 -> "15.3%". Non-numeric input passes through.
func Percent(v any) any {
	d, ok := toDecimal(v)
	if !ok {
		return v
	}
	return formatPercent(d, 1)
}

func formatCurrency(d decimal.Decimal, maxFrac int) string {
	s := trimFraction(d.StringFixed(int32(maxFrac)))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	out := groupThousands(intPart)
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		return "-$" + out
	}
	return "$" + out
}

func formatPercent(d decimal.Decimal, maxFrac int) string {
	//nolint:mnd // percent is fraction * 100
	return trimFraction(d.Mul(decimal.NewFromInt(100)).StringFixed(int32(maxFrac))) + "%"
}

// toDecimal extracts a decimal from the supported cell value kinds.
// The second return is false for anything the guard clause passes
// through: nil, NaN/Inf floats, empty or non-numeric strings.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return x, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return toDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		s := strings.TrimSpace(x)
		switch s {
		case "", "None", "N/A", "-", "NaN":
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// trimFraction drops trailing fraction zeros and a dangling point,
// leaving at most the digits that carry information.
func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
