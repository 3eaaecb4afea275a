package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	t.Run("renders a medium image by default", func(t *testing.T) {
		data, err := render.PNG("https://example.com/r/abc123", nil)

		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})

	t.Run("applies the size class", func(t *testing.T) {
		for name, want := range map[string]int{"small": 128, "medium": 256, "large": 512} {
			data, err := render.PNG("https://example.com/r/abc123", &qr.Customization{Size: name})

			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, want, img.Bounds().Dx(), "size class %s", name)
		}
	})

	t.Run("applies a custom fill color", func(t *testing.T) {
		data, err := render.PNG("https://example.com/r/abc123", &qr.Customization{FillColor: "#1a2b3c"})

		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("rejects an invalid fill color", func(t *testing.T) {
		_, err := render.PNG("content", &qr.Customization{FillColor: "#zzz"})

		assert.Error(t, err)
	})

	t.Run("rejects an unknown size class", func(t *testing.T) {
		_, err := render.PNG("content", &qr.Customization{Size: "gigantic"})

		assert.Error(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := render.PNG("", nil)

		assert.Error(t, err)
	})
}
