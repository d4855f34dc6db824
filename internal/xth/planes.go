package xth

import "fmt"

// ColumnBytes returns the number of bytes holding one column of height
// pixels.
func ColumnBytes(height int) int {
	return (height + 7) / 8
}

// PlaneSize returns the size in bytes of one bit plane for a width x
// height picture.
func PlaneSize(width, height int) int {
	return ColumnBytes(height) * width
}

// Pack splits the grid into its two bit planes.
//
// Columns are visited from the rightmost source column to the leftmost,
// so plane column 0 holds source column width-1. Rows within a column are
// packed MSB first, 8 per byte.
func Pack(g *Grid) (plane0, plane1 []byte) {
	colBytes := ColumnBytes(g.Height)
	size := colBytes * g.Width
	plane0 = make([]byte, size)
	plane1 = make([]byte, size)

	for x := g.Width - 1; x >= 0; x-- {
		base := (g.Width - 1 - x) * colBytes
		for y := 0; y < g.Height; y++ {
			level := g.Levels[y*g.Width+x]
			if level == 0 {
				continue
			}
			idx := base + y/8
			mask := byte(1) << (7 - uint(y%8))
			if level&1 != 0 {
				plane0[idx] |= mask
			}
			if level&2 != 0 {
				plane1[idx] |= mask
			}
		}
	}
	return plane0, plane1
}

// Unpack rebuilds a grid from its bit planes. It is the inverse of Pack.
func Unpack(plane0, plane1 []byte, width, height int) (*Grid, error) {
	size := PlaneSize(width, height)
	if len(plane0) != size || len(plane1) != size {
		return nil, fmt.Errorf("plane sizes %d/%d do not match %dx%d (want %d)",
			len(plane0), len(plane1), width, height, size)
	}

	colBytes := ColumnBytes(height)
	g := NewGrid(width, height)
	for x := width - 1; x >= 0; x-- {
		base := (width - 1 - x) * colBytes
		for y := 0; y < height; y++ {
			idx := base + y/8
			shift := 7 - uint(y%8)
			level := (plane0[idx]>>shift)&1 | ((plane1[idx]>>shift)&1)<<1
			g.Levels[y*width+x] = level
		}
	}
	return g, nil
}
