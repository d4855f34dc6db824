package convert

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/ironsheep/image2xth/internal/dither"
	"github.com/ironsheep/image2xth/internal/imaging"
)

// Validation errors returned by Options.Validate.
var (
	ErrInvalidGamma = errors.New("gamma must be a positive number")
	ErrInvalidJobs  = errors.New("jobs must not be negative")
)

// Options configures one conversion run.
type Options struct {
	// Dither selects the quantization algorithm.
	Dither dither.Algorithm

	// Gamma is the tone curve exponent. 1.0 leaves samples unchanged.
	Gamma float64

	// Invert swaps black and white before the gamma curve is applied.
	Invert bool

	// Mode selects how the source is fitted to the canvas.
	Mode imaging.FitMode

	// Pad is the sample used for canvas areas the source does not cover.
	Pad uint8

	// Preview also writes a PNG rendering of each frame.
	Preview bool

	// Jobs bounds how many files ConvertDir processes at once. Zero means
	// runtime.NumCPU().
	Jobs int

	// Kernel runs Atkinson diffusion. Nil means dither.SelectKernel().
	Kernel dither.Kernel

	// Debug enables per-stage log output.
	Debug bool
}

// DefaultOptions returns cover fitting, Atkinson dithering, gamma 1.0 and
// white padding.
func DefaultOptions() Options {
	return Options{
		Dither: dither.Atkinson,
		Gamma:  1.0,
		Mode:   imaging.Cover,
		Pad:    imaging.PadWhite,
		Jobs:   runtime.NumCPU(),
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if math.IsNaN(o.Gamma) || math.IsInf(o.Gamma, 0) || o.Gamma <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGamma, o.Gamma)
	}
	if o.Jobs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, o.Jobs)
	}
	return nil
}
