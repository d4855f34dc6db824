package imaging

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Named pad samples.
const (
	PadBlack uint8 = 0
	PadWhite uint8 = 255
)

// ParsePad resolves a pad color to a gray sample.
//
// Accepted forms are "black", "white" (case-insensitive) and hex colors
// such as "#808080" or "#abc", which are reduced to their BT.601 luma.
// Anything else resolves to PadWhite with ok set to false.
func ParsePad(s string) (sample uint8, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "black":
		return PadBlack, true
	case "white":
		return PadWhite, true
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err == nil {
			r, g, b := c.Clamped().RGB255()
			return luma(r, g, b), true
		}
	}
	return PadWhite, false
}
