package imagefile

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes encodes a blank PNG of the given dimensions.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	good := pngBytes(t, 200, 150)
	tiny := pngBytes(t, 50, 50)

	t.Run("accepts a valid image", func(t *testing.T) {
		res := Validate("photo.png", "image/png", int64(len(good)), bytes.NewReader(good))
		assert.True(t, res.OK)
		assert.Empty(t, res.Message)
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		res := Validate("doc.pdf", "application/pdf", 1024, bytes.NewReader(good))
		assert.False(t, res.OK)
		assert.Contains(t, res.Message, "not an image")
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		res := Validate("huge.png", "image/png", MaxSize+1, bytes.NewReader(good))
		assert.False(t, res.OK)
		assert.Contains(t, res.Message, "5 MB")
	})

	t.Run("rejects images below minimum dimensions", func(t *testing.T) {
		res := Validate("tiny.png", "image/png", int64(len(tiny)), bytes.NewReader(tiny))
		assert.False(t, res.OK)
		assert.Contains(t, res.Message, "too small")
	})

	t.Run("rejects undecodable content", func(t *testing.T) {
		garbage := []byte("definitely not an image")
		res := Validate("fake.png", "image/png", int64(len(garbage)), bytes.NewReader(garbage))
		assert.False(t, res.OK)
		assert.Contains(t, res.Message, "could not be decoded")
	})

	t.Run("accepts exactly the minimum dimensions", func(t *testing.T) {
		edge := pngBytes(t, MinWidth, MinHeight)
		res := Validate("edge.png", "image/png", int64(len(edge)), bytes.NewReader(edge))
		assert.True(t, res.OK)
	})
}
