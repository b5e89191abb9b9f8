package leaf

import (
	"errors"
	"fmt"
)

// Buffer validation errors.
var (
	ErrEmptyBuffer         = errors.New("buffer has zero width or height")
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrShortPixels         = errors.New("pixel data shorter than width*height*channels")
)

// Buffer is an 8-bit pixel grid in row-major order.
//
// Channels is 1 (grayscale) or 3 (red, green, blue). Pixel (x, y) starts at
// Pix[(y*Width+x)*Channels]. The buffer is only read by this package.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRGB allocates a zeroed 3-channel buffer.
func NewRGB(width, height int) Buffer {
	return Buffer{Width: width, Height: height, Channels: 3, Pix: make([]uint8, width*height*3)}
}

// SetRGB writes one pixel of a 3-channel buffer.
func (b Buffer) SetRGB(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// Validate reports whether the buffer can be analyzed meaningfully.
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyBuffer, b.Width, b.Height)
	}
	if b.Channels != 1 && b.Channels != 3 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, b.Channels)
	}
	if len(b.Pix) < b.Width*b.Height*b.Channels {
		return fmt.Errorf("%w: have %d, need %d", ErrShortPixels, len(b.Pix), b.Width*b.Height*b.Channels)
	}
	return nil
}

// rgb returns the pixel at index i, broadcasting grayscale to three channels.
func (b Buffer) rgb(i int) (r, g, bl uint8) {
	if b.Channels == 1 {
		v := b.Pix[i]
		return v, v, v
	}
	p := i * 3
	return b.Pix[p], b.Pix[p+1], b.Pix[p+2]
}
