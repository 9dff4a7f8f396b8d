// Package barcode generates and validates numeric product barcodes.
package barcode

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

var barcodeRE = regexp.MustCompile(`^\d{8,13}$`)

// Generate returns a pseudo-unique 13-digit barcode: the current epoch
// millisecond timestamp concatenated with a zero-padded 3-digit random
// suffix, truncated to the last 13 characters.
//
// Known weakness: uniqueness is NOT guaranteed. Two calls within the same
// millisecond collide with probability 1/1000; callers that need hard
// uniqueness must enforce it at the store.
func Generate() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	suffix := fmt.Sprintf("%03d", rand.IntN(1000))
	code := ts + suffix
	if len(code) > 13 {
		code = code[len(code)-13:]
	}
	return code
}

// IsValid reports whether s is 8 to 13 digits.
func IsValid(s string) bool {
	return barcodeRE.MatchString(s)
}
