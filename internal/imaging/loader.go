package imaging

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// supportedExtensions maps lowercase file extensions to format names.
// JPEG, PNG, GIF, BMP and TIFF decoders are registered by the imaging
// package; WebP is registered above.
var supportedExtensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".bmp":  "bmp",
	".gif":  "gif",
	".webp": "webp",
	".tiff": "tiff",
	".tif":  "tiff",
}

// IsSupported reports whether the file extension of path is one of the
// accepted input formats. The comparison is case-insensitive.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions returns the accepted extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Decode reads an image in any supported format and converts it to 8-bit
// grayscale.
//
// Returns:
//   - *image.Gray: The decoded picture with bounds at the origin.
//   - error: Non-nil if the data is not a decodable image or has no pixels.
func Decode(r io.Reader) (*image.Gray, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return ToGray(img), nil
}

// Load opens and decodes the image file at path.
//
// The format is detected from the file contents, not the extension.
func Load(path string) (*image.Gray, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return ToGray(img), nil
}

// ToGray converts any image to 8-bit grayscale with bounds at the origin.
//
// Color pixels are reduced with the ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B) on non-premultiplied components, so a
// pixel with equal R, G and B keeps its value exactly. Alpha is ignored.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[off:off+w])
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := src.Pix[off : off+4*w]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := range out {
				out[x] = luma(row[4*x], row[4*x+1], row[4*x+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.Pix[y*dst.Stride+x] = luma(c.R, c.G, c.B)
			}
		}
	}
	return dst
}

// luma computes BT.601 luma in 16.16 fixed point.
func luma(r, g, b uint8) uint8 {
	y := (uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 1<<15) >> 16
	return uint8(y)
}
