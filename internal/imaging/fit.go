package imaging

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Canvas dimensions of the target panel.
const (
	CanvasWidth  = 480
	CanvasHeight = 800
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// FitMode selects how a source picture is placed on the canvas.
type FitMode int

const (
	// Cover scales uniformly to cover the canvas and crops the overflow.
	Cover FitMode = iota
	// Letterbox scales uniformly to fit inside the canvas and pads.
	Letterbox
	// Fill stretches to the canvas without preserving aspect ratio.
	Fill
	// Crop centers a canvas-sized window over the unscaled source.
	Crop
)

// String returns the flag name of the mode.
func (m FitMode) String() string {
	switch m {
	case Cover:
		return "cover"
	case Fill:
		return "fill"
	case Crop:
		return "crop"
	default:
		return "letterbox"
	}
}

// ParseFitMode resolves a case-insensitive mode name. Unknown names resolve
// to Letterbox with ok set to false.
func ParseFitMode(s string) (mode FitMode, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cover":
		return Cover, true
	case "letterbox":
		return Letterbox, true
	case "fill":
		return Fill, true
	case "crop":
		return Crop, true
	default:
		return Letterbox, false
	}
}

// Layout describes where a source lands on the canvas.
type Layout struct {
	// Mode is the fit mode the layout was computed for.
	Mode FitMode

	// Scaled is the size of the source after resampling. For Crop it is
	// the source size.
	Scaled image.Point

	// Offset is the origin of the canvas window within the scaled image
	// for Cover and Crop, or the paste position of the scaled image on the
	// canvas for Letterbox. It is zero for Fill. Crop offsets are negative
	// when the source is smaller than the canvas.
	Offset image.Point
}

// Plan computes the layout of a w x h source for the given mode.
//
// Scaled sizes are truncated toward zero. Cover sizes are raised to the
// canvas size where float rounding left them one pixel short, and
// Letterbox sizes are kept within [1, canvas].
func Plan(mode FitMode, w, h int) Layout {
	sx := float64(CanvasWidth) / float64(w)
	sy := float64(CanvasHeight) / float64(h)

	switch mode {
	case Fill:
		return Layout{Mode: Fill, Scaled: image.Pt(CanvasWidth, CanvasHeight)}

	case Crop:
		return Layout{
			Mode:   Crop,
			Scaled: image.Pt(w, h),
			Offset: image.Pt((w-CanvasWidth)/2, (h-CanvasHeight)/2),
		}

	case Cover:
		s := max(sx, sy)
		sw := max(int(float64(w)*s), CanvasWidth)
		sh := max(int(float64(h)*s), CanvasHeight)
		return Layout{
			Mode:   Cover,
			Scaled: image.Pt(sw, sh),
			Offset: image.Pt((sw-CanvasWidth)/2, (sh-CanvasHeight)/2),
		}

	default:
		s := min(sx, sy)
		sw := min(max(int(float64(w)*s), 1), CanvasWidth)
		sh := min(max(int(float64(h)*s), 1), CanvasHeight)
		return Layout{
			Mode:   Letterbox,
			Scaled: image.Pt(sw, sh),
			Offset: image.Pt((CanvasWidth-sw)/2, (CanvasHeight-sh)/2),
		}
	}
}

// Fit places src on a CanvasWidth x CanvasHeight canvas.
//
// Parameters:
//   - src: The decoded picture. It is not modified.
//   - mode: The fit policy. See FitMode.
//   - pad: Sample value for canvas pixels not covered by the source. Used
//     by Letterbox, and by Crop when the source is smaller than the canvas.
//
// Returns:
//   - *image.Gray: A new image of exactly CanvasWidth x CanvasHeight.
//   - error: ErrEmptyImage if src has no pixels.
func Fit(src *image.Gray, mode FitMode, pad uint8) (*image.Gray, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	layout := Plan(mode, b.Dx(), b.Dy())

	var canvas image.Image
	switch layout.Mode {
	case Fill:
		canvas = imaging.Resize(src, CanvasWidth, CanvasHeight, imaging.CatmullRom)

	case Cover:
		scaled := imaging.Resize(src, layout.Scaled.X, layout.Scaled.Y, imaging.CatmullRom)
		canvas = imaging.Crop(scaled, canvasRect(layout.Offset))

	case Crop:
		window := canvasRect(layout.Offset.Add(b.Min))
		bg := imaging.New(CanvasWidth, CanvasHeight, color.Gray{Y: pad})
		visible := window.Intersect(b)
		if visible.Empty() {
			canvas = bg
			break
		}
		part := imaging.Crop(src, visible)
		canvas = imaging.Paste(bg, part, visible.Min.Sub(window.Min))

	default:
		scaled := imaging.Resize(src, layout.Scaled.X, layout.Scaled.Y, imaging.CatmullRom)
		bg := imaging.New(CanvasWidth, CanvasHeight, color.Gray{Y: pad})
		canvas = imaging.Paste(bg, scaled, layout.Offset)
	}

	return ToGray(canvas), nil
}

// canvasRect returns the canvas-sized rectangle with origin at p.
func canvasRect(p image.Point) image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+CanvasWidth, p.Y+CanvasHeight)
}
