package leaf

import "image/color"

// Reference colors and their HSV classification:
//   - leafGreen:      h=60 s=255 v=200 -> green only
//   - powderyWhite:   h=0  s=0   v=230 -> powdery only
//   - spotBrown:      h=14 s=204 v=120 -> brown only
//   - chloroticYellow h=27 s=209 v=220 -> yellow only
var (
	leafGreen       = color.RGBA{0, 200, 0, 255}
	powderyWhite    = color.RGBA{230, 230, 230, 255}
	spotBrown       = color.RGBA{120, 70, 24, 255}
	chloroticYellow = color.RGBA{220, 200, 40, 255}
)

// band is a run of full-width rows painted with one color.
type band struct {
	rows int
	c    color.RGBA
}

// uniformBuffer creates a 3-channel buffer filled with one color.
func uniformBuffer(width, height int, r, g, b uint8) Buffer {
	buf := NewRGB(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, r, g, b)
		}
	}
	return buf
}

// bandedBuffer stacks horizontal bands top to bottom. Bands at least three
// rows tall survive the opening filter unchanged.
func bandedBuffer(width int, bands ...band) Buffer {
	height := 0
	for _, b := range bands {
		height += b.rows
	}

	buf := NewRGB(width, height)
	y := 0
	for _, b := range bands {
		for i := 0; i < b.rows; i++ {
			for x := 0; x < width; x++ {
				buf.SetRGB(x, y, b.c.R, b.c.G, b.c.B)
			}
			y++
		}
	}
	return buf
}

// maskFromRows builds a mask from strings of '#' (true) and '.' (false).
func maskFromRows(rows ...string) Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			m.Set(x, y, ch == '#')
		}
	}
	return m
}

func masksEqual(a, b Mask) bool {
	if a.Width != b.Width || a.Height != b.Height || len(a.Bits) != len(b.Bits) {
		return false
	}
	for i := range a.Bits {
		if a.Bits[i] != b.Bits[i] {
			return false
		}
	}
	return true
}
