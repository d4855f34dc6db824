package dither

import "image"

// FloydSteinberg diffuses quantization error with the classic 7/16, 3/16,
// 5/16, 1/16 weights in raster order.
//
// Error is carried at full precision. Each working value is clamped to
// [0,255] before it is quantized, and the error is taken against the
// clamped value.
func FloydSteinberg(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	// Two rows of pending error with one margin column on each side.
	cur := make([]float64, w+2)
	next := make([]float64, w+2)

	for y := 0; y < h; y++ {
		in := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			v := float64(in[x]) + cur[x+1]
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			quant := toneOfFloat(v)
			out[x] = uint8(quant)

			err := v - float64(quant)
			if err == 0 {
				continue
			}
			// Explicit conversions keep each product rounded on its own so
			// results do not depend on FMA fusion.
			cur[x+2] += float64(err * 7 / 16)
			next[x] += float64(err * 3 / 16)
			next[x+1] += float64(err * 5 / 16)
			next[x+2] += float64(err * 1 / 16)
		}
		cur, next = next, cur
		clear(next)
	}
	return dst
}

func toneOfFloat(v float64) int {
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
