// Package dither reduces 8-bit grayscale canvases to the four tones the
// e-ink panel can show: 0, 85, 170 and 255.
//
// Three algorithms are available. None maps each pixel through fixed
// threshold bands. Atkinson and Floyd diffuse quantization error to
// unprocessed neighbors in raster order.
//
// # Kernels
//
// The Atkinson inner loop is provided by a Kernel. ReferenceKernel is a
// direct transcription of the diffusion rules over a flat int16 buffer;
// FastKernel computes identical output with row slices and an int32
// buffer. SelectKernel picks one once at startup. Set
// XTH_REFERENCE_KERNEL=1 to force the reference loop.
package dither
