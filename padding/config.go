// Package padding shrinks an image and centers it on a solid canvas of the
// original size, leaving a uniform border.
package padding

import (
	"image/color"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-pad/images"
)

const (
	// DefaultRatio is the fraction of each canvas dimension left as border.
	DefaultRatio = 0.3
	// DefaultQuality is the encoder quality for lossy output formats.
	DefaultQuality = images.DefaultQuality
)

var (
	// ErrInvalidRatio is returned when the padding ratio is outside [0, 1).
	ErrInvalidRatio = errors.New("padding ratio must be in [0, 1)")
	// ErrInvalidQuality is returned when the encoder quality is outside [1, 100].
	ErrInvalidQuality = errors.New("quality must be in [1, 100]")
)

// Config defines how an image is padded.
type Config struct {
	// Ratio is the fraction of the canvas reserved as border. The source is
	// scaled by 1 - Ratio on both axes.
	Ratio float64 `json:"ratio" yaml:"ratio"`
	// Background is the canvas color. Alpha is ignored; the canvas is opaque.
	Background color.RGBA `json:"background" yaml:"background"`
	// Quality is the JPEG/WebP encoder quality (1-100).
	Quality int `json:"quality" yaml:"quality"`
	// Filter is the resampling filter used to shrink the source.
	Filter images.ResampleFilter `json:"filter" yaml:"filter"`
	// Backend is the resampling implementation.
	Backend images.Backend `json:"backend" yaml:"backend"`
}

// DefaultConfig returns a Config with a 30% black border, Lanczos resampling
// and quality 95.
func DefaultConfig() Config {
	return Config{
		Ratio:      DefaultRatio,
		Background: color.RGBA{R: 0, G: 0, B: 0, A: 0xff},
		Quality:    DefaultQuality,
		Filter:     images.LanczosFilter,
		Backend:    images.BackendNative,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	// The negated comparison also rejects NaN.
	if !(c.Ratio >= 0 && c.Ratio < 1) {
		return errors.Wrapf(ErrInvalidRatio, "got %v", c.Ratio)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errors.Wrapf(ErrInvalidQuality, "got %d", c.Quality)
	}
	switch c.Backend {
	case images.BackendNative, images.BackendNfnt, images.BackendImaging:
	default:
		return errors.Errorf("unknown resize backend: %q", c.Backend)
	}
	if c.Filter < images.NearestNeighborFilter || c.Filter > images.MitchellNetravaliFilter {
		return errors.Errorf("unknown resample filter: %d", c.Filter)
	}
	return nil
}
