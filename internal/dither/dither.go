package dither

import (
	"image"
	"strings"
)

// Algorithm selects how tones are quantized.
type Algorithm int

const (
	// None maps each pixel through the threshold bands.
	None Algorithm = iota
	// Atkinson diffuses 6/8 of the error to six neighbors.
	Atkinson
	// Floyd is Floyd-Steinberg error diffusion.
	Floyd
)

// String returns the flag name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Atkinson:
		return "atkinson"
	case Floyd:
		return "floyd"
	default:
		return "none"
	}
}

// ParseAlgorithm resolves a case-insensitive algorithm name. Unknown names
// resolve to None with ok set to false.
func ParseAlgorithm(s string) (a Algorithm, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "atkinson":
		return Atkinson, true
	case "floyd":
		return Floyd, true
	case "none":
		return None, true
	default:
		return None, false
	}
}

// Representative tones and their band floors.
const (
	toneBlack     = 0
	toneDarkGray  = 85
	toneLightGray = 170
	toneWhite     = 255

	darkGrayFloor  = 42
	lightGrayFloor = 127
	whiteFloor     = 212
)

// Tone quantizes a sample to one of the four representative tones. The
// argument may lie outside [0,255] while error is being diffused.
func Tone(v int) int {
	switch {
	case v < darkGrayFloor:
		return toneBlack
	case v < lightGrayFloor:
		return toneDarkGray
	case v < whiteFloor:
		return toneLightGray
	default:
		return toneWhite
	}
}

var toneLUT = func() (lut [256]uint8) {
	for i := range lut {
		lut[i] = uint8(Tone(i))
	}
	return lut
}()

// Quantize returns a new image holding src reduced to four tones.
//
// The kernel is used only by Atkinson; a nil kernel falls back to
// ReferenceKernel. src is not modified.
func Quantize(src *image.Gray, algo Algorithm, k Kernel) *image.Gray {
	switch algo {
	case Atkinson:
		if k == nil {
			k = ReferenceKernel{}
		}
		return k.Atkinson(src)
	case Floyd:
		return FloydSteinberg(src)
	default:
		return Threshold(src)
	}
}

// Threshold maps each pixel through the band table without diffusion.
func Threshold(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		in := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range out {
			out[x] = toneLUT[in[x]]
		}
	}
	return dst
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
