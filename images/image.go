package images

import (
	"bytes"
	"image"
	"os"

	"github.com/pkg/errors"
)

// Image represents an encoded image file with its detected format and size.
type Image struct {
	// Path is the file the image was read from, if any.
	Path string `json:"path" yaml:"path"`
	// The format of the image, as detected from its content.
	Format ImageFormat `json:"format" yaml:"format"`
	// The encoded bytes of the image.
	Data []byte `json:"data" yaml:"data"`
	// The width of the image.
	Width int `json:"width" yaml:"width"`
	// The height of the image.
	Height int `json:"height" yaml:"height"`
}

// Load reads the image file at path and detects its format and dimensions
// from the content. The pixels are not decoded until Decode is called.
//
// Arguments:
//   - path: Path to a JPEG, PNG, GIF, WebP, BMP or TIFF file.
//
// Returns:
//   - *Image: The loaded image.
//   - error: If the file cannot be read or is not a recognised image.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}

	img, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	img.Path = path
	return img, nil
}

// Parse detects the format and dimensions of encoded image bytes.
func Parse(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "detect image format")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", cfg.Width, cfg.Height)
	}

	return &Image{
		Format: ImageFormat(format),
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Decode decodes the image pixels.
func (i *Image) Decode() (image.Image, error) {
	if len(i.Data) == 0 {
		return nil, ErrEmptyData
	}

	decoded, _, err := image.Decode(bytes.NewReader(i.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", i.Format)
	}
	return decoded, nil
}
