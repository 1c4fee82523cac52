// Package utils provides display formatting helpers for AIRE.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// Absent is the placeholder printed for values the engine could not derive.
const Absent = "—"

// FormatMoney formats a dollar amount with thousands separators
// ($1,234,568). Cents are dropped; amounts round to the nearest dollar.
func FormatMoney(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	intPart := int64(math.Round(amount))
	formatted := groupThousands(intPart)

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatMoneyPtr formats an optional dollar amount, printing the absent
// placeholder for nil.
func FormatMoneyPtr(amount *float64) string {
	if amount == nil {
		return Absent
	}
	return FormatMoney(*amount)
}

// FormatPercent formats a fractional value (0.0599) as a percentage
// ("5.99%") with the given number of decimals.
func FormatPercent(frac float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, frac*100)
}

// FormatPercentPtr formats an optional fraction as a percentage,
// printing the absent placeholder for nil.
func FormatPercentPtr(frac *float64, decimals int) string {
	if frac == nil {
		return Absent
	}
	return FormatPercent(*frac, decimals)
}

// FormatRatio formats a plain ratio ("1.25x") with two decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// FormatRatioPtr formats an optional ratio, printing the absent
// placeholder for nil.
func FormatRatioPtr(v *float64) string {
	if v == nil {
		return Absent
	}
	return FormatRatio(*v)
}

// groupThousands renders an integer with comma separators every
// three digits.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
