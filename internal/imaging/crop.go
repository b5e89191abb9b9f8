package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive).
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RegionNames lists the names accepted by NamedRegion.
var RegionNames = []string{
	"full", "center", "top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half",
}

// Crop extracts a rectangular region from an image. The result's bounds
// start at (0,0).
func Crop(img image.Image, r Region) (image.Image, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2)), nil
}

// NamedRegion resolves a region name to coordinates within img.
//
// "center" is the middle 50% in each direction, which usually keeps the leaf
// and drops the background around it.
func NamedRegion(img image.Image, name string) (Region, error) {
	bounds := img.Bounds()
	x0, y0 := bounds.Min.X, bounds.Min.Y
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r Region
	switch name {
	case "full", "":
		r = Region{0, 0, w, h}
	case "top-left":
		r = Region{0, 0, midX, midY}
	case "top-right":
		r = Region{midX, 0, w, midY}
	case "bottom-left":
		r = Region{0, midY, midX, h}
	case "bottom-right":
		r = Region{midX, midY, w, h}
	case "top-half":
		r = Region{0, 0, w, midY}
	case "bottom-half":
		r = Region{0, midY, w, h}
	case "left-half":
		r = Region{0, 0, midX, h}
	case "right-half":
		r = Region{midX, 0, w, h}
	case "center":
		qW, qH := w/4, h/4
		r = Region{qW, qH, w - qW, h - qH}
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}

	r.X1 += x0
	r.X2 += x0
	r.Y1 += y0
	r.Y2 += y0
	return r, nil
}
