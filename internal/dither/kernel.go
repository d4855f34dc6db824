package dither

import (
	"image"
	"os"
	"strconv"
)

// Kernel runs Atkinson error diffusion. Implementations must produce
// identical output for identical input.
type Kernel interface {
	Name() string
	Atkinson(src *image.Gray) *image.Gray
}

// SelectKernel returns FastKernel unless the XTH_REFERENCE_KERNEL
// environment variable is set to a true value.
func SelectKernel() Kernel {
	if referenceKernelEnv() {
		return ReferenceKernel{}
	}
	return FastKernel{}
}

func referenceKernelEnv() bool {
	val := os.Getenv("XTH_REFERENCE_KERNEL")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// ReferenceKernel is the scalar Atkinson loop over a flat buffer.
//
// The buffer has one margin column before each row, two after, and two
// extra rows at the bottom, so every neighbor write lands inside it.
type ReferenceKernel struct{}

// Name implements Kernel.
func (ReferenceKernel) Name() string { return "reference" }

// Atkinson implements Kernel.
func (ReferenceKernel) Atkinson(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := w + 3
	data := make([]int16, (h+2)*stride)
	for y := 0; y < h; y++ {
		in := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			data[y*stride+x+1] = int16(in[x])
		}
	}

	for y := 0; y < h; y++ {
		rowStart := y * stride
		for x := 1; x <= w; x++ {
			idx := rowStart + x
			old := data[idx]
			quant := int16(Tone(int(old)))
			data[idx] = quant
			err := old - quant
			if err == 0 {
				continue
			}
			err8 := err >> 3
			data[idx+1] += err8
			data[idx+2] += err8
			next := idx + stride
			data[next-1] += err8
			data[next] += err8
			data[next+1] += err8
			data[next+stride] += err8
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = clamp8(int(data[y*stride+x+1]))
		}
	}
	return dst
}

// FastKernel is Atkinson diffusion over three rotating row buffers.
//
// Each row buffer carries the same margins as ReferenceKernel, so the
// neighbor set, shift and order of updates are unchanged.
type FastKernel struct{}

// Name implements Kernel.
func (FastKernel) Name() string { return "fast" }

// Atkinson implements Kernel.
func (FastKernel) Atkinson(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	stride := w + 3
	rows := [3][]int32{
		make([]int32, stride),
		make([]int32, stride),
		make([]int32, stride),
	}
	load := func(row []int32, y int) {
		if y >= h {
			return
		}
		in := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		in = in[:w]
		for x, v := range in {
			row[x+1] += int32(v)
		}
	}
	load(rows[0], 0)
	load(rows[1], 1)

	for y := 0; y < h; y++ {
		cur, next, next2 := rows[0], rows[1], rows[2]
		load(next2, y+2)
		// Slicing to stride lets the compiler drop bounds checks below.
		cur, next, next2 = cur[:stride], next[:stride], next2[:stride]

		for x := 1; x <= w; x++ {
			old := cur[x]
			var quant int32
			switch {
			case old < darkGrayFloor:
				quant = toneBlack
			case old < lightGrayFloor:
				quant = toneDarkGray
			case old < whiteFloor:
				quant = toneLightGray
			default:
				quant = toneWhite
			}
			cur[x] = quant
			err := old - quant
			if err == 0 {
				continue
			}
			err8 := err >> 3
			cur[x+1] += err8
			cur[x+2] += err8
			next[x-1] += err8
			next[x] += err8
			next[x+1] += err8
			next2[x] += err8
		}

		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range out {
			out[x] = clamp8(int(cur[x+1]))
		}

		clear(cur)
		rows[0], rows[1], rows[2] = next, next2, cur
	}
	return dst
}
