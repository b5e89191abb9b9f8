package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// DefaultHighlight is the overlay color used when none is given.
const DefaultHighlight = "#FF00FFB4"

// OverlayResult contains a mask overlay rendered as base64 PNG.
type OverlayResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Mask        string  `json:"mask"`
	Coverage    float64 `json:"coverage"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// MaskOverlay renders img in grayscale and paints the pixels set in m with
// the highlight color, blended by the highlight's alpha over the original
// color.
//
// m must have the same dimensions as img. An invalid highlight falls back to
// DefaultHighlight.
func MaskOverlay(img image.Image, name string, m leaf.Mask, highlightHex string) (*OverlayResult, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if m.Width != width || m.Height != height {
		return nil, fmt.Errorf("mask %dx%d does not match image %dx%d", m.Width, m.Height, width, height)
	}

	highlight, err := parseHexColor(highlightHex)
	if err != nil {
		highlight, _ = parseHexColor(DefaultHighlight)
	}
	alpha := float64(highlight.A) / 255

	result := effect.Grayscale(img)
	rb := result.Bounds()

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				if !m.Bits[y*width+x] {
					continue
				}
				orig := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				result.SetRGBA(rb.Min.X+x, rb.Min.Y+y, color.RGBA{
					R: blend(orig.R, highlight.R, alpha),
					G: blend(orig.G, highlight.G, alpha),
					B: blend(orig.B, highlight.B, alpha),
					A: 255,
				})
			}
		}
	})

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       width,
		Height:      height,
		Mask:        name,
		Coverage:    leaf.Coverage(m),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func blend(base, over uint8, alpha float64) uint8 {
	return uint8(float64(base)*(1-alpha) + float64(over)*alpha + 0.5)
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
