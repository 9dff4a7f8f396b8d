package barcode_test

import (
	"testing"

	"github.com/shashiranjanraj/kidstore/pkg/barcode"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"12345678", true},        // 8 digits — lower bound
		{"1234567890123", true},   // 13 digits — upper bound
		{"1234567", false},        // 7 digits
		{"12345678901234", false}, // 14 digits
		{"1234567a", false},
		{"", false},
	}
	for _, c := range cases {
		if got := barcode.IsValid(c.in); got != c.want {
			t.Errorf("IsValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGenerateFormat(t *testing.T) {
	code := barcode.Generate()
	if len(code) != 13 {
		t.Fatalf("Generate() returned %d characters, want 13: %q", len(code), code)
	}
	if !barcode.IsValid(code) {
		t.Fatalf("Generate() produced an invalid barcode: %q", code)
	}
}

// Rapid generation may collide (time + 3 random digits is low entropy); the
// contract is only that it never fails and always produces a valid code.
func TestGenerateBurst(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if code := barcode.Generate(); !barcode.IsValid(code) {
			t.Fatalf("burst generation produced invalid barcode %q", code)
		}
	}
}
