// Package imaging prepares decoded pictures for the 480x800 e-ink canvas.
//
// This package is the front half of the conversion pipeline. It decodes
// container formats into 8-bit grayscale, fits the result onto the fixed
// canvas, and applies tone adjustments. All resampling goes through
// github.com/disintegration/imaging with the Catmull-Rom (bicubic) filter.
//
// # Coordinate System
//
// All images returned by this package are *image.Gray with bounds starting
// at (0,0). X increases rightward and Y increases downward.
//
// # Fit Modes
//
//   - cover: scale uniformly until the canvas is covered, crop the overflow
//   - letterbox: scale uniformly until the picture fits, pad the remainder
//   - fill: stretch to the canvas, ignoring aspect ratio
//   - crop: take a centered canvas-sized window without scaling
//
// Unknown mode names resolve to letterbox.
//
// # Crop Policy
//
// In crop mode a source smaller than the canvas yields a window that
// extends past the source. Those canvas pixels take the pad sample; the
// source is never read out of bounds.
//
// # Thread Safety
//
// All functions are stateless and never modify their inputs, so they can
// be called concurrently on different images.
package imaging
