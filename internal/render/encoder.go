// Package render rasterizes QR codes into PNG images.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	qrcode "github.com/skip2/go-qrcode"
)

// pixel sizes per size class
const (
	sizeSmall  = 128
	sizeMedium = 256
	sizeLarge  = 512
)

// PNG encodes content into a QR symbol and rasterizes it, applying the
// code's customization when present. Defaults are a black-on-white symbol
// at the medium size.
func PNG(content string, c *qr.Customization) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr symbol: %w", err)
	}

	size := sizeMedium

	if c != nil {
		if c.FillColor != "" {
			fill, err := parseHexColor(c.FillColor)
			if err != nil {
				return nil, err
			}

			code.ForegroundColor = fill
		}

		switch strings.ToLower(c.Size) {
		case "small":
			size = sizeSmall
		case "large":
			size = sizeLarge
		case "", "medium":
		default:
			return nil, fmt.Errorf("unknown size class %q", c.Size)
		}
	}

	return code.PNG(size)
}

func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid fill color %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid fill color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
