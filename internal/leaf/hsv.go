package leaf

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV holds hue/saturation/value planes with the same dimensions as the
// source buffer.
//
// Hue uses the half-circle encoding (degrees/2, 0-179); saturation and value
// are scaled to 0-255.
type HSV struct {
	Width  int
	Height int
	H      []uint8
	S      []uint8
	V      []uint8
}

// ToHSV converts a buffer to HSV. Grayscale buffers are treated as three
// identical channels, so they always produce hue 0 and saturation 0.
//
// The buffer must pass Validate; ToHSV does not check it.
func ToHSV(b Buffer) HSV {
	n := b.Width * b.Height
	out := HSV{
		Width:  b.Width,
		Height: b.Height,
		H:      make([]uint8, n),
		S:      make([]uint8, n),
		V:      make([]uint8, n),
	}

	parallel.Line(b.Height, func(start, end int) {
		for i := start * b.Width; i < end*b.Width; i++ {
			r, g, bl := b.rgb(i)
			out.H[i], out.S[i], out.V[i] = PixelHSV(r, g, bl)
		}
	})

	return out
}

// PixelHSV converts a single 8-bit RGB triple to quantized HSV.
func PixelHSV(r, g, b uint8) (h, s, v uint8) {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	hf, sf, vf := c.Hsv()

	hq := int(math.Round(hf / 2))
	if hq >= 180 {
		hq -= 180
	}
	return uint8(hq), uint8(math.Round(sf * 255)), uint8(math.Round(vf * 255))
}
