package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// ToBuffer copies an image into a leaf.Buffer.
//
// 8-bit and 16-bit grayscale images become single-channel buffers; every
// other image becomes a 3-channel RGB buffer. Alpha is dropped without
// compositing, so a translucent pixel keeps its straight (non-premultiplied)
// color. 16-bit channels keep their high byte.
func ToBuffer(img image.Image) leaf.Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf := leaf.Buffer{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
		return buf
	case *image.Gray16:
		buf := leaf.Buffer{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.Pix[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return buf
	}

	buf := leaf.NewRGB(w, h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				buf.SetRGB(x, y, c.R, c.G, c.B)
			}
		}
	})
	return buf
}
