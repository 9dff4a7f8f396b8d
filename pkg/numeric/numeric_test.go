package numeric_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shashiranjanraj/kidstore/pkg/numeric"
)

func TestCleanPriceInput(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"50000":       "50000",
		"50.000 VND":  "50.000",
		"abc":         "",
		"12a3.4b5":    "123.45",
		"₫1,250,000":  "1250000",
		"  99.9  ":    "99.9",
		"-42":         "42",
		"1.2.3":       "1.2.3", // dots are kept as-is; parsing decides validity
	}
	for in, want := range cases {
		if got := numeric.CleanPriceInput(in); got != want {
			t.Errorf("CleanPriceInput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanNumberInputIsDigitFilter(t *testing.T) {
	inputs := []string{"", "123", "a1b2c3", "12.5", "đôi 10", "-7", "stock: 042"}
	for _, in := range inputs {
		got := numeric.CleanNumberInput(in)

		// Only digits survive.
		for _, r := range got {
			if r < '0' || r > '9' {
				t.Fatalf("CleanNumberInput(%q) produced non-digit %q", in, r)
			}
		}

		// Order-preserving filter: output is a subsequence of the input.
		if len(got) > len(in) {
			t.Fatalf("CleanNumberInput(%q) longer than input: %q", in, got)
		}
		rest := in
		for _, r := range got {
			idx := strings.IndexRune(rest, r)
			if idx < 0 {
				t.Fatalf("CleanNumberInput(%q) = %q is not a subsequence", in, got)
			}
			rest = rest[idx+1:]
		}
	}
}

func TestIsValidPrice(t *testing.T) {
	valid := []string{"0", "0.5", "100", "99999.99"}
	for _, s := range valid {
		if !numeric.IsValidPrice(s) {
			t.Errorf("IsValidPrice(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-1", "abc", "1.2.3"}
	for _, s := range invalid {
		if numeric.IsValidPrice(s) {
			t.Errorf("IsValidPrice(%q) = true, want false", s)
		}
	}
}

func TestIsValidNumber(t *testing.T) {
	if !numeric.IsValidNumber("10") || !numeric.IsValidNumber("0") {
		t.Error("expected plain integers to be valid")
	}
	for _, s := range []string{"", "-3", "1.5", "ten"} {
		if numeric.IsValidNumber(s) {
			t.Errorf("IsValidNumber(%q) = true, want false", s)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{"", 0},
		{"50000", 50000},
		{"50.5", 50.5},
		{"abc", 0},
		{"1.2.3", 0},
		{float64(75000), 75000},
		{42, 42},
		{"  60 000 đ ", 60000},
	}
	for _, c := range cases {
		if got := numeric.ParsePrice(c.in); got != c.want {
			t.Errorf("ParsePrice(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	if got := numeric.ParseQuantity("10 cái"); got != 10 {
		t.Errorf("ParseQuantity = %d, want 10", got)
	}
	if got := numeric.ParseQuantity(""); got != 0 {
		t.Errorf("ParseQuantity empty = %d, want 0", got)
	}
	if got := numeric.ParseQuantity(7); got != 7 {
		t.Errorf("ParseQuantity int = %d, want 7", got)
	}
}

// Round-trip: the digit sequence of a formatted price recovers the integer
// part of the original value. Full numeric recovery is impossible because the
// vi-VN locale uses "." as the thousands separator, which ParsePrice then
// reads as a decimal point; only the digit filter is lossless.
func TestFormatParseRoundTrip(t *testing.T) {
	for _, p := range []float64{0, 1, 999, 50000, 1250000} {
		formatted := numeric.FormatPrice(p)
		want := strconv.FormatFloat(p, 'f', 0, 64)
		if got := numeric.CleanNumberInput(formatted); got != want {
			t.Errorf("CleanNumberInput(FormatPrice(%v)) = %q, want %q (formatted %q)", p, got, want, formatted)
		}
		if parsed := numeric.ParsePrice(formatted); parsed < 0 {
			t.Errorf("ParsePrice(%q) = %v, want >= 0", formatted, parsed)
		}
	}
}
