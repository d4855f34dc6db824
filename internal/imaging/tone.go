package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// GammaLUT builds the lookup table s -> round(((s/255)^gamma)*255),
// clamped to [0,255].
func GammaLUT(gamma float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := math.Round(math.Pow(float64(i)/255, gamma) * 255)
		switch {
		case v < 0 || math.IsNaN(v):
			v = 0
		case v > 255:
			v = 255
		}
		lut[i] = uint8(v)
	}
	return lut
}

// AdjustTone returns a copy of src with optional inversion followed by
// gamma remapping.
//
// A gamma of exactly 1.0 skips the gamma table. When neither adjustment
// applies the result is a plain copy.
func AdjustTone(src *image.Gray, gamma float64, invert bool) *image.Gray {
	useGamma := gamma != 1.0
	if !useGamma && !invert {
		return ToGray(src)
	}

	var lut [256]uint8
	if useGamma {
		lut = GammaLUT(gamma)
	} else {
		for i := range lut {
			lut[i] = uint8(i)
		}
	}
	if invert {
		inv := lut
		for i := range lut {
			lut[i] = inv[255-i]
		}
	}

	adjusted := imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
	return ToGray(adjusted)
}
