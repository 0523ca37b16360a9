package padding

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// ErrEmptyLayout is returned when the scaled source would have no pixels.
var ErrEmptyLayout = errors.New("scaled image has zero width or height")

// Layout describes where the shrunken source lands on the canvas.
type Layout struct {
	// Width and Height are the canvas size, equal to the source size.
	Width, Height int
	// ScaledWidth and ScaledHeight are the size of the resized source.
	ScaledWidth, ScaledHeight int
	// OffsetX and OffsetY are the top-left corner of the resized source.
	OffsetX, OffsetY int
}

// NewLayout computes the placement of a width x height source padded by ratio.
// Scaled sizes are truncated, not rounded, and the source is centered with
// integer division, so any odd leftover pixel goes to the right/bottom border.
func NewLayout(width, height int, ratio float64) (Layout, error) {
	if !(ratio >= 0 && ratio < 1) {
		return Layout{}, errors.Wrapf(ErrInvalidRatio, "got %v", ratio)
	}
	if width <= 0 || height <= 0 {
		return Layout{}, errors.Errorf("invalid source dimensions: %dx%d", width, height)
	}

	scale := 1.0 - ratio
	l := Layout{
		Width:        width,
		Height:       height,
		ScaledWidth:  int(float64(width) * scale),
		ScaledHeight: int(float64(height) * scale),
	}
	if l.ScaledWidth <= 0 || l.ScaledHeight <= 0 {
		return Layout{}, errors.Wrapf(ErrEmptyLayout, "%dx%d at ratio %v", width, height, ratio)
	}
	l.OffsetX = (width - l.ScaledWidth) / 2
	l.OffsetY = (height - l.ScaledHeight) / 2
	return l, nil
}

// Bounds returns the canvas rectangle covered by the resized source.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(l.OffsetX, l.OffsetY, l.OffsetX+l.ScaledWidth, l.OffsetY+l.ScaledHeight)
}

// Offset returns the top-left corner of the resized source.
func (l Layout) Offset() image.Point {
	return image.Pt(l.OffsetX, l.OffsetY)
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d -> %dx%d at (%d,%d)",
		l.Width, l.Height, l.ScaledWidth, l.ScaledHeight, l.OffsetX, l.OffsetY)
}
