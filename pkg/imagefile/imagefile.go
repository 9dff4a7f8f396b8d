// Package imagefile validates uploaded product photos before they reach
// storage. Checks run cheapest-first: content type, byte size, then pixel
// dimensions (which requires decoding the image header).
package imagefile

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
)

const (
	// MaxSize is the largest accepted upload, in bytes.
	MaxSize = 5 * 1024 * 1024

	// MinWidth / MinHeight are the smallest accepted pixel dimensions.
	MinWidth  = 100
	MinHeight = 100
)

// Result is the outcome of a validation run. When OK is false, Message holds
// a human-readable reason suitable for returning to the client.
type Result struct {
	OK      bool
	Message string
}

func reject(format string, args ...any) Result {
	return Result{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Validate checks an uploaded file against the product-photo rules:
//
//   - content type must be an image/* MIME type
//   - size must not exceed MaxSize (5 MB)
//   - decoded dimensions must be at least MinWidth×MinHeight
//
// r is read only as far as the image header; callers that need the full
// content afterwards should pass a re-readable source (e.g. seek back, or
// wrap in a TeeReader).
func Validate(name, contentType string, size int64, r io.Reader) Result {
	if !strings.HasPrefix(contentType, "image/") {
		return reject("file %q is not an image (got %s)", name, contentType)
	}
	if size > MaxSize {
		return reject("file %q exceeds the %d MB limit", name, MaxSize/(1024*1024))
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return reject("file %q could not be decoded as an image", name)
	}
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return reject("image %q is too small: %dx%d (minimum %dx%d)",
			name, cfg.Width, cfg.Height, MinWidth, MinHeight)
	}
	return Result{OK: true}
}
