// Package xth implements the XTH frame format read by the 480x800 e-ink
// panel controller.
//
// A frame stores a 2-bit (4-level) grayscale picture as two 1-bit planes
// behind a fixed 22-byte little-endian header:
//
//	offset size field
//	0      4    magic "XTH\x00"
//	4      2    width
//	6      2    height
//	8      2    reserved (zero)
//	10     4    payload length (2 * plane size)
//	14     8    first 8 bytes of MD5(plane0 ++ plane1)
//	22     ...  plane0, then plane1
//
// # Levels
//
// Pixels are stored as levels 0-3, inversely related to brightness:
// level 0 is white and level 3 is black. Bit 0 of each level goes to
// plane0 and bit 1 goes to plane1.
//
// # Scan Order
//
// Planes are column-major and mirrored horizontally. Source column x is
// stored as column w-1-x; within a column, each byte covers 8 rows with
// the first row in the most significant bit.
package xth
