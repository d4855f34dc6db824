package xth

import (
	"fmt"
	"image"
)

// Panel canvas dimensions.
const (
	Width  = 480
	Height = 800
)

// Level thresholds on 8-bit tone values.
const (
	whiteFloor     = 212
	lightGrayFloor = 127
	darkGrayFloor  = 42
)

// LevelOf maps an 8-bit tone to its packed level. White maps to 0 and
// black to 3.
func LevelOf(tone uint8) uint8 {
	switch {
	case tone >= whiteFloor:
		return 0
	case tone >= lightGrayFloor:
		return 1
	case tone >= darkGrayFloor:
		return 2
	default:
		return 3
	}
}

// ToneOf returns the representative tone for a level. Only the two low
// bits of level are used.
func ToneOf(level uint8) uint8 {
	return [4]uint8{255, 170, 85, 0}[level&3]
}

// Grid is a row-major grid of levels in {0,1,2,3}.
type Grid struct {
	Width  int
	Height int
	Levels []uint8
}

// NewGrid allocates an all-white grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Levels: make([]uint8, width*height),
	}
}

// At returns the level at (x, y).
func (g *Grid) At(x, y int) uint8 {
	return g.Levels[y*g.Width+x]
}

// Set stores level&3 at (x, y).
func (g *Grid) Set(x, y int, level uint8) {
	g.Levels[y*g.Width+x] = level & 3
}

// GridFromTones remaps a quantized tone image to levels.
func GridFromTones(img *image.Gray) (*Grid, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("cannot build grid from empty image")
	}
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		row := img.Pix[off : off+g.Width]
		for x, v := range row {
			g.Levels[y*g.Width+x] = LevelOf(v)
		}
	}
	return g, nil
}

// Image renders the grid back to a tone image.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.Pix[y*img.Stride+x] = ToneOf(g.At(x, y))
		}
	}
	return img
}
