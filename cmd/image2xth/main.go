package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ironsheep/image2xth/internal/convert"
	"github.com/ironsheep/image2xth/internal/dither"
	"github.com/ironsheep/image2xth/internal/imaging"
	"github.com/ironsheep/image2xth/internal/xth"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout carries per-file results)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "image2xth - convert images to 2-bit 4-level grayscale XTH frames (480x800)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: image2xth [options] <image-or-directory>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  image2xth image.jpg                      # Atkinson dither, cover scaling")
	fmt.Fprintln(w, "  image2xth image.jpg --mode letterbox     # Scale to fit with padding")
	fmt.Fprintln(w, "  image2xth image.jpg --pad black          # Black padding")
	fmt.Fprintln(w, "  image2xth image.jpg --dither floyd       # Floyd-Steinberg")
	fmt.Fprintln(w, "  image2xth image.jpg --gamma 0.7          # Brighten")
	fmt.Fprintln(w, "  image2xth folder/                        # Convert all images in folder")
	fmt.Fprintln(w, "  image2xth image.xth                      # Inspect and verify a frame")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  IMAGE2XTH_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w, "  XTH_REFERENCE_KERNEL=1       Use the reference Atkinson loop")
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("image2xth", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	ditherName := fs.String("dither", "atkinson", "dithering: atkinson, floyd or none")
	gamma := fs.Float64("gamma", 1.0, "gamma exponent applied after inversion (<1 brightens)")
	modeName := fs.String("mode", "cover", "fit mode: cover, letterbox, fill or crop")
	padName := fs.String("pad", "white", "padding for letterbox and small crops: black, white or #RRGGBB")
	invert := fs.Bool("invert", false, "invert black and white")
	preview := fs.Bool("preview", false, "also write a <name>.preview.png rendering")
	jobs := fs.Int("jobs", 0, "files converted in parallel in directory mode (0 = all CPUs)")
	version := fs.BoolP("version", "v", false, "print version information")
	help := fs.BoolP("help", "h", false, "print this help message")
	fs.Usage = func() { usage(stdout, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *version {
		fmt.Fprintf(stdout, "image2xth %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}
	if *help || fs.NArg() == 0 {
		usage(stdout, fs)
		return 0
	}

	opts := convert.DefaultOptions()
	opts.Gamma = *gamma
	opts.Invert = *invert
	opts.Preview = *preview
	opts.Jobs = *jobs
	opts.Debug = os.Getenv("IMAGE2XTH_LOG_LEVEL") == "debug"

	var ok bool
	if opts.Dither, ok = dither.ParseAlgorithm(*ditherName); !ok {
		log.Printf("unknown dither %q, using %s", *ditherName, opts.Dither)
	}
	if opts.Mode, ok = imaging.ParseFitMode(*modeName); !ok {
		log.Printf("unknown mode %q, using %s", *modeName, opts.Mode)
	}
	if opts.Pad, ok = imaging.ParsePad(*padName); !ok {
		log.Printf("unknown pad %q, using white", *padName)
	}

	if opts.Debug {
		log.Printf("image2xth v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	conv, err := convert.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	path := fs.Arg(0)
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintln(stderr, "Error: No valid input file or folder specified")
		return 1
	}

	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), convert.FrameExt) {
			return inspect(path, opts.Preview, stdout, stderr)
		}
		report(stdout, conv.ConvertFile(path))
		return 0
	}

	results, err := conv.ConvertDir(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	failed := 0
	for _, res := range results {
		report(stdout, res)
		if !res.OK() {
			failed++
		}
	}
	fmt.Fprintf(stdout, "%d converted, %d failed\n", len(results)-failed, failed)
	return 0
}

// report prints one per-file status line.
func report(w io.Writer, res convert.Result) {
	if !res.OK() {
		fmt.Fprintf(w, "  ✗ %s: %v\n", filepath.Base(res.Input), res.Err)
		return
	}
	fmt.Fprintf(w, "  ✓ %s (%dKB)\n", filepath.Base(res.Output), res.Bytes/1024)
}

// inspect prints the header of an existing frame and verifies its digest.
func inspect(path string, preview bool, stdout, stderr io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	frame, err := xth.Decode(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
		return 1
	}

	h := frame.Header
	fmt.Fprintf(stdout, "%s: %dx%d, payload %d bytes, digest %x (ok)\n",
		filepath.Base(path), h.Width, h.Height, h.PayloadLength, h.Digest)

	if preview {
		out := convert.PreviewPath(path)
		if err := convert.WritePreview(out, frame); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "  ✓ %s\n", filepath.Base(out))
	}
	return 0
}
