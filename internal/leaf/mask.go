package leaf

import (
	"errors"
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
)

// Mask color thresholds on the quantized HSV scale (H 0-179, S/V 0-255).
// Ranges are inclusive.
const (
	// Green leaf tissue.
	GreenHueMin = 35
	GreenHueMax = 85
	GreenSatMin = 50
	GreenValMin = 50

	// Brown necrotic tissue.
	BrownHueMin = 10
	BrownHueMax = 25
	BrownSatMin = 50
	BrownValMax = 170

	// Dark desaturated pixels, also counted as brown.
	DarkSatMax = 60
	DarkValMax = 80

	// Powdery coating: bright and nearly colorless.
	PowderySatMax = 40
	PowderyValMin = 200

	// Yellow chlorosis.
	YellowHueMin = 20
	YellowHueMax = 35
	YellowValMin = 120
)

// ErrUnknownMask is returned by Masks.ByName for names other than
// green, brown, powdery and yellow.
var ErrUnknownMask = errors.New("unknown mask")

// Thresholds is the calibration table used by Build.
type Thresholds struct {
	GreenHueMin   uint8 `json:"green_hue_min"`
	GreenHueMax   uint8 `json:"green_hue_max"`
	GreenSatMin   uint8 `json:"green_sat_min"`
	GreenValMin   uint8 `json:"green_val_min"`
	BrownHueMin   uint8 `json:"brown_hue_min"`
	BrownHueMax   uint8 `json:"brown_hue_max"`
	BrownSatMin   uint8 `json:"brown_sat_min"`
	BrownValMax   uint8 `json:"brown_val_max"`
	DarkSatMax    uint8 `json:"dark_sat_max"`
	DarkValMax    uint8 `json:"dark_val_max"`
	PowderySatMax uint8 `json:"powdery_sat_max"`
	PowderyValMin uint8 `json:"powdery_val_min"`
	YellowHueMin  uint8 `json:"yellow_hue_min"`
	YellowHueMax  uint8 `json:"yellow_hue_max"`
	YellowValMin  uint8 `json:"yellow_val_min"`
}

// DefaultThresholds returns the stock calibration built from the package
// constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GreenHueMin:   GreenHueMin,
		GreenHueMax:   GreenHueMax,
		GreenSatMin:   GreenSatMin,
		GreenValMin:   GreenValMin,
		BrownHueMin:   BrownHueMin,
		BrownHueMax:   BrownHueMax,
		BrownSatMin:   BrownSatMin,
		BrownValMax:   BrownValMax,
		DarkSatMax:    DarkSatMax,
		DarkValMax:    DarkValMax,
		PowderySatMax: PowderySatMax,
		PowderyValMin: PowderyValMin,
		YellowHueMin:  YellowHueMin,
		YellowHueMax:  YellowHueMax,
		YellowValMin:  YellowValMin,
	}
}

// Green reports whether a pixel looks like healthy leaf tissue.
func (t Thresholds) Green(h, s, v uint8) bool {
	return h >= t.GreenHueMin && h <= t.GreenHueMax && s >= t.GreenSatMin && v >= t.GreenValMin
}

// Brown reports whether a pixel looks necrotic. Any dark, desaturated pixel
// also matches, which includes shadows and soil.
func (t Thresholds) Brown(h, s, v uint8) bool {
	if h >= t.BrownHueMin && h <= t.BrownHueMax && s >= t.BrownSatMin && v <= t.BrownValMax {
		return true
	}
	return s <= t.DarkSatMax && v <= t.DarkValMax
}

// Powdery reports whether a pixel looks like a white fungal coating.
func (t Thresholds) Powdery(_, s, v uint8) bool {
	return s <= t.PowderySatMax && v >= t.PowderyValMin
}

// Yellow reports whether a pixel looks chlorotic.
func (t Thresholds) Yellow(h, _, v uint8) bool {
	return h >= t.YellowHueMin && h <= t.YellowHueMax && v >= t.YellowValMin
}

// Mask is a row-major boolean grid.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) Mask {
	return Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// At returns the mask value at (x, y). Coordinates outside the grid read as
// false.
func (m Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Set writes the mask value at (x, y).
func (m Mask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}

// Count returns the number of true pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Masks holds the four per-category masks. A pixel may be set in several.
type Masks struct {
	Green   Mask
	Brown   Mask
	Powdery Mask
	Yellow  Mask
}

// MaskNames lists the mask names accepted by Masks.ByName.
var MaskNames = []string{"green", "brown", "powdery", "yellow"}

// ByName returns the mask for one of MaskNames.
func (m Masks) ByName(name string) (Mask, error) {
	switch name {
	case "green":
		return m.Green, nil
	case "brown":
		return m.Brown, nil
	case "powdery":
		return m.Powdery, nil
	case "yellow":
		return m.Yellow, nil
	default:
		return Mask{}, fmt.Errorf("%w: %q", ErrUnknownMask, name)
	}
}

// Build evaluates the four color predicates for every pixel.
func (t Thresholds) Build(hsv HSV) Masks {
	w, h := hsv.Width, hsv.Height
	out := Masks{
		Green:   NewMask(w, h),
		Brown:   NewMask(w, h),
		Powdery: NewMask(w, h),
		Yellow:  NewMask(w, h),
	}

	parallel.Line(h, func(start, end int) {
		for i := start * w; i < end*w; i++ {
			hh, s, v := hsv.H[i], hsv.S[i], hsv.V[i]
			out.Green.Bits[i] = t.Green(hh, s, v)
			out.Brown.Bits[i] = t.Brown(hh, s, v)
			out.Powdery.Bits[i] = t.Powdery(hh, s, v)
			out.Yellow.Bits[i] = t.Yellow(hh, s, v)
		}
	})

	return out
}
