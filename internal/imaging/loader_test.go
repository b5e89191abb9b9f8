package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The file is removed when the test finishes.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, img)
}

// writePNG encodes img to a temp file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaf.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache(0)
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 100, 100, color.RGBA{0, 200, 0, 255})

	// First load
	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_Downscales(t *testing.T) {
	cache := NewImageCache(50)
	imgPath := createTestImage(t, 200, 100, color.RGBA{0, 200, 0, 255})

	img, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("downscaled dimensions: got %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestImageCache_Load_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	path := filepath.Join(t.TempDir(), "leaf.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, src, nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	f.Close()

	img, err := NewImageCache(0).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", b.Dx(), b.Dy())
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache(0)

	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := cache.Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	cache.mu.RLock()
	count := len(cache.images)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", count)
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestDownscale(t *testing.T) {
	img := createInMemoryImage(400, 100, color.RGBA{0, 200, 0, 255})

	tests := []struct {
		name         string
		maxDimension int
		wantW, wantH int
	}{
		{"disabled", 0, 400, 100},
		{"negative disables", -5, 400, 100},
		{"already fits", 400, 400, 100},
		{"shrinks keeping aspect", 200, 200, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Downscale(img, tt.maxDimension).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache(100)
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("stored dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.AnalysisWidth != 100 || info.AnalysisHeight != 75 {
		t.Errorf("analysis dimensions: got %dx%d, want 100x75", info.AnalysisWidth, info.AnalysisHeight)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.Grayscale {
		t.Error("Grayscale should be false for an RGBA image")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_FormatFromContents(t *testing.T) {
	cache := NewImageCache(0)

	// A PNG with a misleading extension is still reported as png
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	path := filepath.Join(t.TempDir(), "leaf.xyz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	png.Encode(f, img)
	f.Close()

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
}

func TestLoadImageInfo_Grayscale(t *testing.T) {
	cache := NewImageCache(0)
	path := writePNG(t, image.NewGray(image.Rect(0, 0, 8, 8)))

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.Grayscale {
		t.Error("Grayscale should be true for a gray PNG")
	}
	if info.HasAlpha {
		t.Error("HasAlpha should be false for a gray PNG")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
