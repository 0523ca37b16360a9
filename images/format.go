package images

import (
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	// The webp, bmp and tiff packages register their decoders with image.Decode.
	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat represents supported image formats.
type ImageFormat string

// ImageFormat constants. The values match the names reported by image.Decode.
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
	// FormatGIF is the GIF image format (decode only).
	FormatGIF ImageFormat = "gif"
	// FormatBMP is the BMP image format.
	FormatBMP ImageFormat = "bmp"
	// FormatTIFF is the TIFF image format.
	FormatTIFF ImageFormat = "tiff"
)

// DefaultQuality is the lossy encoder quality used when none is given.
const DefaultQuality = 95

var (
	// ErrUnsupportedFormat is returned when no encoder exists for a format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrEmptyData is returned when an image has no bytes to decode.
	ErrEmptyData = errors.New("empty image data")
	// ErrInvalidDimensions is returned for non-positive target sizes.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

var extensions = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWebP,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath returns the format implied by the file extension of path,
// and false when the extension is missing or unknown.
func FormatFromPath(path string) (ImageFormat, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// OutputFormat picks the encoder for path. Unknown extensions and decode-only
// formats fall back to JPEG.
func OutputFormat(path string) ImageFormat {
	f, ok := FormatFromPath(path)
	if !ok || f == FormatGIF {
		return FormatJPEG
	}
	return f
}

// Lossy reports whether quality affects the encoder output.
func (f ImageFormat) Lossy() bool {
	return f == FormatJPEG || f == FormatWebP
}

// Encode writes img to w in the given format.
//
// Arguments:
//   - w: Destination writer.
//   - img: The image to encode.
//   - format: Target format; GIF is not supported for output.
//   - quality: 1-100, used by JPEG and WebP only.
//
// Returns:
//   - error: ErrUnsupportedFormat, or the encoder's error.
func Encode(w io.Writer, img image.Image, format ImageFormat, quality int) error {
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "encode %q", format)
	}
	return errors.Wrapf(err, "encode %s", format)
}
