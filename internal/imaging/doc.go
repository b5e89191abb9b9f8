// Package imaging loads leaf photographs and bridges them to the leaf
// analysis pipeline.
//
// It decodes image files (with EXIF orientation applied), optionally
// downscales them, converts them to leaf.Buffer, crops analysis regions,
// samples individual pixel colors and renders mask overlays for review.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Coordinates refer to the image as analyzed, that is after orientation and
// downscaling.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Color Representation
//
// Sampled colors are returned as:
//   - Hex: 6-character format "#rrggbb" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - HSV: Hue (0-179, half degrees), Saturation (0-255), Value (0-255),
//     the same scale the leaf mask thresholds use
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates or regions outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
