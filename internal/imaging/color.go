package imaging

import (
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor is a color on the leaf mask scale.
type HSVColor struct {
	H uint8 `json:"h"` // Hue: 0-179 half degrees (0=red, 30=yellow, 60=green)
	S uint8 `json:"s"` // Saturation: 0-255
	V uint8 `json:"v"` // Value: 0-255
}

// ColorSample describes one pixel and the mask predicates it satisfies.
type ColorSample struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
	HSV HSVColor `json:"hsv"`

	// Matches names the raw color predicates ("green", "brown", "powdery",
	// "yellow") this pixel satisfies. The opening filter may still drop the
	// pixel if its neighbors do not match.
	Matches []string `json:"matches"`
}

// SampleColor reads the pixel at (x, y) and classifies it against th.
//
// Fully transparent pixels read as black.
func SampleColor(img image.Image, x, y int, th leaf.Thresholds) (*ColorSample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c, _ := colorful.MakeColor(img.At(x, y))
	r, g, b := c.RGB255()
	h, s, v := leaf.PixelHSV(r, g, b)

	matches := []string{}
	for _, p := range []struct {
		name string
		ok   bool
	}{
		{"green", th.Green(h, s, v)},
		{"brown", th.Brown(h, s, v)},
		{"powdery", th.Powdery(h, s, v)},
		{"yellow", th.Yellow(h, s, v)},
	} {
		if p.ok {
			matches = append(matches, p.name)
		}
	}

	return &ColorSample{
		X:       x,
		Y:       y,
		Hex:     c.Hex(),
		RGB:     RGBColor{R: r, G: g, B: b},
		HSV:     HSVColor{H: h, S: s, V: v},
		Matches: matches,
	}, nil
}
