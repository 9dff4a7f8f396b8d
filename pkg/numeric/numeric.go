// Package numeric cleans and parses raw form input into numbers, and formats
// numbers for display using the vi-VN locale.
//
// Every function is total: malformed input degrades to an empty string, false
// or zero — never a panic or an error. That matches the forgiving behaviour a
// form field needs while the user is still typing.
package numeric

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CleanPriceInput strips every character that is not a digit or a decimal
// point. Empty input yields an empty string.
func CleanPriceInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanNumberInput strips every non-digit character, preserving digit order.
func CleanNumberInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPrice reports whether s parses as a floating-point number >= 0.
func IsValidPrice(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= 0
}

// IsValidNumber reports whether s parses as an integer >= 0.
func IsValidNumber(s string) bool {
	if s == "" {
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= 0
}

// ParsePrice converts a raw form value into a price. Numeric values pass
// through unchanged; strings are cleaned and then parsed. Empty or malformed
// input yields 0.
func ParsePrice(v any) float64 {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		cleaned := CleanPriceInput(s)
		if cleaned == "" {
			return 0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// ParseQuantity converts a raw form value into a non-negative count.
// Numeric values pass through; strings keep digits only. Default is 0.
func ParseQuantity(v any) int {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		cleaned := CleanNumberInput(s)
		if cleaned == "" {
			return 0
		}
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0
		}
		return n
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatPrice renders a price the way the storefront shows it: grouped
// integer digits in the vi-VN locale with a trailing currency marker,
// e.g. 50000 → "50.000 VND".
func FormatPrice(p float64) string {
	return viPrinter.Sprint(number.Decimal(p, number.MaxFractionDigits(0))) + " VND"
}

// FormatNumber renders a number with vi-VN digit grouping.
func FormatNumber(n float64) string {
	return viPrinter.Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
}
