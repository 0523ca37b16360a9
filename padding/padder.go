package padding

import (
	"image"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-pad/images"
)

// Padder pads images according to a Config.
type Padder struct {
	config Config
	log    logrus.FieldLogger
}

// Option customizes a Padder.
type Option func(*Padder)

// WithLogger sets the logger used for stage details and the success message.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Padder) {
		if log != nil {
			p.log = log
		}
	}
}

// WithBackend overrides the resampling backend.
func WithBackend(backend images.Backend) Option {
	return func(p *Padder) {
		p.config.Backend = backend
	}
}

// WithFilter overrides the resampling filter.
func WithFilter(filter images.ResampleFilter) Option {
	return func(p *Padder) {
		p.config.Filter = filter
	}
}

// New creates a Padder after applying opts to config and validating the result.
//
// @example
//
//	padder, err := padding.New(padding.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	err = padder.PadFile("assets/icon.jpeg", "assets/icon_padded.jpeg")
func New(config Config, opts ...Option) (*Padder, error) {
	p := &Padder{
		config: config,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid padding config")
	}
	return p, nil
}

// Config returns the effective configuration.
func (p *Padder) Config() Config {
	return p.config
}

// Pad shrinks img by the configured ratio and centers it on an opaque canvas
// of img's size filled with the background color.
//
// Arguments:
//   - img: The source image. Any alpha is discarded in the result.
//
// Returns:
//   - *image.RGBA: The padded canvas, anchored at the origin.
//   - Layout: Where the resized source was placed.
//   - error: ErrInvalidRatio, ErrEmptyLayout or a resampling error.
func (p *Padder) Pad(img image.Image) (*image.RGBA, Layout, error) {
	if img == nil {
		return nil, Layout{}, errors.New("image is nil")
	}

	bounds := img.Bounds()
	layout, err := NewLayout(bounds.Dx(), bounds.Dy(), p.config.Ratio)
	if err != nil {
		return nil, Layout{}, err
	}

	resized, err := images.ResizeWith(p.config.Backend, img, layout.ScaledWidth, layout.ScaledHeight, p.config.Filter)
	if err != nil {
		return nil, Layout{}, errors.Wrap(err, "resize")
	}

	canvas := images.NewCanvas(layout.Width, layout.Height, p.config.Background)
	images.Paste(canvas, resized, layout.Offset())

	p.log.WithFields(logrus.Fields{
		"layout":  layout.String(),
		"backend": p.config.Backend,
		"filter":  p.config.Filter.String(),
	}).Debug("padded image")

	return canvas, layout, nil
}

// PadFile pads the image at inputPath and writes it to outputPath.
//
// The output encoder follows outputPath's extension (JPEG when unknown). The
// file is written atomically: on any failure outputPath is left untouched and
// no temporary file remains.
func (p *Padder) PadFile(inputPath, outputPath string) error {
	src, err := images.Load(inputPath)
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"path":   src.Path,
		"format": src.Format,
		"width":  src.Width,
		"height": src.Height,
	}).Debug("loaded image")

	decoded, err := src.Decode()
	if err != nil {
		return errors.Wrapf(err, "decode %s", inputPath)
	}

	canvas, _, err := p.Pad(decoded)
	if err != nil {
		return errors.Wrapf(err, "pad %s", inputPath)
	}

	format := images.OutputFormat(outputPath)
	err = writeAtomic(outputPath, func(w io.Writer) error {
		return images.Encode(w, canvas, format, p.config.Quality)
	})
	if err != nil {
		return errors.Wrapf(err, "write %s", outputPath)
	}

	p.log.WithFields(logrus.Fields{
		"format":   format,
		"checksum": images.Checksum(canvas),
	}).Debug("encoded canvas")
	p.log.Infof("Successfully created padded icon at %s", outputPath)

	return nil
}
