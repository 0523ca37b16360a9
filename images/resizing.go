package images

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Backend selects the resampling implementation.
type Backend string

const (
	// BackendNative uses the separable resampler in this package.
	BackendNative Backend = "native"
	// BackendNfnt uses github.com/nfnt/resize.
	BackendNfnt Backend = "nfnt"
	// BackendImaging uses github.com/disintegration/imaging.
	BackendImaging Backend = "imaging"
)

var nfntFilters = map[ResampleFilter]resize.InterpolationFunction{
	NearestNeighborFilter:   resize.NearestNeighbor,
	BilinearFilter:          resize.Bilinear,
	BicubicFilter:           resize.Bicubic,
	LanczosFilter:           resize.Lanczos3,
	MitchellNetravaliFilter: resize.MitchellNetravali,
}

var imagingFilters = map[ResampleFilter]imaging.ResampleFilter{
	NearestNeighborFilter:   imaging.NearestNeighbor,
	BilinearFilter:          imaging.Linear,
	BicubicFilter:           imaging.CatmullRom,
	LanczosFilter:           imaging.Lanczos,
	MitchellNetravaliFilter: imaging.MitchellNetravali,
}

// ResizeWith resizes img to width x height with the given backend and filter.
// It provides a unified interface over the native resampler and the library
// backends; every backend honors the exact target dimensions.
//
// Arguments:
//   - backend: The resampling implementation.
//   - img: The source image.
//   - width, height: Target size, both must be positive.
//   - filter: The resampling filter, mapped to the backend's equivalent.
//
// Returns:
//   - image.Image: The resized image, anchored at the origin.
//   - error: ErrInvalidDimensions, or an unknown backend or filter.
func ResizeWith(backend Backend, img image.Image, width, height int, filter ResampleFilter) (image.Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "width=%d, height=%d", width, height)
	}
	if _, ok := kernels[filter]; !ok {
		return nil, errors.Errorf("unknown resample filter: %d", filter)
	}

	switch backend {
	case BackendNative, "":
		return Resize(img, width, height, filter), nil
	case BackendNfnt:
		return resize.Resize(uint(width), uint(height), img, nfntFilters[filter]), nil
	case BackendImaging:
		return imaging.Resize(img, width, height, imagingFilters[filter]), nil
	default:
		return nil, errors.Errorf("unknown resize backend: %q", backend)
	}
}
