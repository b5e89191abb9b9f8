package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createLeafImage creates an image with different leaf conditions in each quadrant
func createLeafImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{0, 200, 0, 255} // Green tissue top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{230, 230, 230, 255} // Powdery top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{120, 70, 24, 255} // Brown bottom-left
			} else {
				c = color.RGBA{220, 200, 40, 255} // Yellow bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createLeafImage(100, 100)
	th := leaf.DefaultThresholds()

	tests := []struct {
		name        string
		x, y        int
		wantHex     string
		wantHSV     HSVColor
		wantMatches []string
	}{
		{"green tissue", 10, 10, "#00c800", HSVColor{60, 255, 200}, []string{"green"}},
		{"powdery", 90, 10, "#e6e6e6", HSVColor{0, 0, 230}, []string{"powdery"}},
		{"brown", 10, 90, "#784618", HSVColor{14, 204, 120}, []string{"brown"}},
		{"yellow", 90, 90, "#dcc828", HSVColor{27, 209, 220}, []string{"yellow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(img, tt.x, tt.y, th)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSV != tt.wantHSV {
				t.Errorf("HSV: got %+v, want %+v", result.HSV, tt.wantHSV)
			}
			if diff := cmp.Diff(tt.wantMatches, result.Matches); diff != "" {
				t.Errorf("Matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSampleColor_NoMatches(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{0, 0, 255, 255})

	result, err := SampleColor(img, 5, 5, leaf.DefaultThresholds())
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Matches == nil || len(result.Matches) != 0 {
		t.Errorf("Matches: got %#v, want empty non-nil slice", result.Matches)
	}
	if result.RGB != (RGBColor{0, 0, 255}) {
		t.Errorf("RGB: got %+v, want (0,0,255)", result.RGB)
	}
}

func TestSampleColor_CustomThresholds(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{190, 190, 190, 255})

	th := leaf.DefaultThresholds()
	result, _ := SampleColor(img, 0, 0, th)
	if len(result.Matches) != 0 {
		t.Errorf("default thresholds: got matches %v, want none", result.Matches)
	}

	th.PowderyValMin = 180
	result, _ = SampleColor(img, 0, 0, th)
	if diff := cmp.Diff([]string{"powdery"}, result.Matches); diff != "" {
		t.Errorf("custom thresholds mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y, leaf.DefaultThresholds())
			if err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Test edge coordinates (should succeed)
	tests := []struct {
		name string
		x, y int
	}{
		{"top-left", 0, 0},
		{"top-right", 99, 0},
		{"bottom-left", 0, 99},
		{"bottom-right", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y, leaf.DefaultThresholds())
			if err != nil {
				t.Errorf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
		})
	}
}
