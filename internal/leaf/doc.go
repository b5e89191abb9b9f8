// Package leaf classifies a photographed plant leaf from its pixel colors.
//
// The pipeline is a pure function of the input buffer and runs strictly forward:
//
//  1. ToHSV converts the RGB (or grayscale) buffer to hue/saturation/value
//     using the half-circle hue encoding (0-179) and 0-255 saturation/value.
//  2. Thresholds.Build derives four independent boolean masks: green leaf
//     tissue, brown/necrotic tissue, powdery coating and yellow chlorosis.
//  3. Open applies a 3x3 morphological opening to each mask to drop isolated
//     noise pixels.
//  4. Coverage reduces each filtered mask to the fraction of true pixels.
//  5. Rules.Classify runs an ordered rule cascade over the four fractions and
//     returns a condition label with a confidence in [0, 1].
//
// # Calibration
//
// Every threshold is a named constant. DefaultThresholds and DefaultRules
// collect them, and Calibration lets callers override individual values
// without touching the rest.
//
// # Thread Safety
//
// No state is kept between calls. Analyze may be called concurrently on
// different buffers. Within one call the per-pixel stages are split by row
// ranges across the available CPUs.
//
// # Degenerate Input
//
// Callers should reject malformed buffers with Buffer.Validate before
// analysis. A buffer that is empty or malformed still produces a defined
// result: all fractions 0, label Healthy, confidence 0.4.
package leaf
