package leaf

import "github.com/anthonynsimon/bild/parallel"

// Open applies a morphological opening with a 3x3 square neighborhood:
// erosion followed by dilation. Pixels outside the grid count as false.
//
// Isolated true pixels and lines thinner than 3 pixels are removed; regions
// at least 3x3 keep their shape. Opening is idempotent.
func Open(m Mask) Mask {
	return dilate(erode(m))
}

// erode keeps a pixel only if it and all 8 neighbors are true.
func erode(m Mask) Mask {
	out := NewMask(m.Width, m.Height)
	parallel.Line(m.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < m.Width; x++ {
				out.Bits[y*m.Width+x] = all3x3(m, x, y)
			}
		}
	})
	return out
}

// dilate sets a pixel if it or any of its 8 neighbors is true.
func dilate(m Mask) Mask {
	out := NewMask(m.Width, m.Height)
	parallel.Line(m.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < m.Width; x++ {
				out.Bits[y*m.Width+x] = any3x3(m, x, y)
			}
		}
	})
	return out
}

func all3x3(m Mask, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if !m.At(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}

func any3x3(m Mask, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if m.At(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// OpenAll filters each of the four masks independently.
func OpenAll(m Masks) Masks {
	return Masks{
		Green:   Open(m.Green),
		Brown:   Open(m.Brown),
		Powdery: Open(m.Powdery),
		Yellow:  Open(m.Yellow),
	}
}
