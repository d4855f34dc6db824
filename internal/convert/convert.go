package convert

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/image2xth/internal/dither"
	"github.com/ironsheep/image2xth/internal/imaging"
	"github.com/ironsheep/image2xth/internal/xth"
)

// Output file extensions.
const (
	FrameExt   = ".xth"
	PreviewExt = ".preview.png"
)

// Converter turns decoded pictures into XTH frames.
type Converter struct {
	opts   Options
	kernel dither.Kernel
}

// Result reports the outcome of converting one file.
type Result struct {
	Input   string
	Output  string
	Preview string
	Bytes   int64
	Elapsed time.Duration
	Err     error
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// New validates opts and returns a Converter. The diffusion kernel is
// resolved here, once.
func New(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	k := opts.Kernel
	if k == nil {
		k = dither.SelectKernel()
	}
	if opts.Debug {
		log.Printf("converter: mode=%s dither=%s gamma=%g invert=%t pad=%d kernel=%s jobs=%d",
			opts.Mode, opts.Dither, opts.Gamma, opts.Invert, opts.Pad, k.Name(), opts.Jobs)
	}
	return &Converter{opts: opts, kernel: k}, nil
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	o := c.opts
	o.Kernel = c.kernel
	return o
}

// Convert runs fit, tone, quantize and pack on src. src is not modified.
func (c *Converter) Convert(src *image.Gray) (*xth.Frame, error) {
	canvas, err := imaging.Fit(src, c.opts.Mode, c.opts.Pad)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	if c.opts.Debug {
		b := src.Bounds()
		l := imaging.Plan(c.opts.Mode, b.Dx(), b.Dy())
		log.Printf("fit %dx%d: scaled=%v offset=%v", b.Dx(), b.Dy(), l.Scaled, l.Offset)
	}

	toned := imaging.AdjustTone(canvas, c.opts.Gamma, c.opts.Invert)
	tones := dither.Quantize(toned, c.opts.Dither, c.kernel)

	grid, err := xth.GridFromTones(tones)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	frame, err := xth.Encode(grid)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return frame, nil
}

// ConvertFile converts the image at input and writes the frame next to
// it, replacing the extension with FrameExt. With Options.Preview set, a
// PNG rendering is written with PreviewExt as well.
func (c *Converter) ConvertFile(input string) (res Result) {
	start := time.Now()
	res = Result{Input: input, Output: OutputPath(input)}
	defer func() {
		res.Elapsed = time.Since(start)
	}()

	src, err := imaging.Load(input)
	if err != nil {
		res.Err = err
		return res
	}

	frame, err := c.Convert(src)
	if err != nil {
		res.Err = err
		return res
	}

	data, err := frame.MarshalBinary()
	if err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(res.Output, data, 0o644); err != nil {
		res.Err = fmt.Errorf("failed to write frame: %w", err)
		return res
	}
	res.Bytes = int64(len(data))

	if c.opts.Preview {
		res.Preview = PreviewPath(input)
		if err := WritePreview(res.Preview, frame); err != nil {
			res.Err = err
			return res
		}
	}

	if c.opts.Debug {
		log.Printf("converted %s -> %s (%d bytes) in %v", input, res.Output, res.Bytes, time.Since(start))
	}
	return res
}

// OutputPath returns input with its extension replaced by FrameExt.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + FrameExt
}

// PreviewPath returns input with its extension replaced by PreviewExt.
func PreviewPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + PreviewExt
}

// EncodePreview writes frame as a grayscale PNG showing its four tones.
func EncodePreview(w io.Writer, frame *xth.Frame) error {
	grid, err := frame.Grid()
	if err != nil {
		return fmt.Errorf("failed to unpack frame: %w", err)
	}
	if err := imgio.PNGEncoder()(w, grid.Image()); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// WritePreview saves frame as a PNG file at path.
func WritePreview(path string, frame *xth.Frame) error {
	grid, err := frame.Grid()
	if err != nil {
		return fmt.Errorf("failed to unpack frame: %w", err)
	}
	if err := imgio.Save(path, grid.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
