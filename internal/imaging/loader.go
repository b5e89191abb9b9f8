package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Images
// are stored after EXIF orientation has been applied and, when the cache has a
// maximum dimension, after downscaling. Subsequent Load() calls for the same
// path return the cached copy without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
type ImageCache struct {
	mu           sync.RWMutex
	images       map[string]image.Image
	maxDimension int
}

// NewImageCache creates an empty image cache.
//
// maxDimension bounds the width and height of cached images; larger images
// are shrunk to fit while keeping their aspect ratio. Zero or negative
// disables downscaling.
func NewImageCache(maxDimension int) *ImageCache {
	return &ImageCache{
		images:       make(map[string]image.Image),
		maxDimension: maxDimension,
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP and TIFF. JPEG orientation tags
// are honored so the pixel grid matches how the photo was taken.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	img = Downscale(img, c.maxDimension)

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Downscale shrinks img to fit within maxDimension x maxDimension, keeping the
// aspect ratio. Images that already fit, and maxDimension <= 0, return img
// unchanged.
//
// Box filtering averages whole pixel blocks, so small isolated specks shrink
// along with the image instead of being sharpened.
func Downscale(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Box)
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the stored image width in pixels.
	Width int `json:"width"`

	// Height is the stored image height in pixels.
	Height int `json:"height"`

	// AnalysisWidth is the width the leaf analysis sees, after orientation
	// and downscaling.
	AnalysisWidth int `json:"analysis_width"`

	// AnalysisHeight is the height the leaf analysis sees.
	AnalysisHeight int `json:"analysis_height"`

	// Format is the decoder that recognized the file contents, e.g. "png" or "jpeg".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// Grayscale is true for single-channel images. Their analysis always
	// sees zero saturation.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and returns metadata about it.
//
// Format, stored dimensions and color model come from the file header; the
// analysis dimensions come from the cached image.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ImageInfo{
		Width:          cfg.Width,
		Height:         cfg.Height,
		AnalysisWidth:  img.Bounds().Dx(),
		AnalysisHeight: img.Bounds().Dy(),
		Format:         format,
		ColorDepth:     "8-bit",
		FileSizeBytes:  stat.Size(),
	}

	// Decoders report straight-alpha models only when the file stores alpha.
	switch cfg.ColorModel {
	case color.NRGBAModel:
		info.HasAlpha = true
	case color.RGBA64Model:
		info.ColorDepth = "16-bit"
	case color.NRGBA64Model:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case color.GrayModel:
		info.Grayscale = true
	case color.Gray16Model:
		info.Grayscale = true
		info.ColorDepth = "16-bit"
	}

	return info, nil
}
