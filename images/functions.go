// Package images - provides the decoding, resampling, compositing and encoding
// primitives used to pad an image onto a solid canvas.
package images

import (
	"image"
	"image/draw"
	"math"
	"runtime"
	"sync"
)

// ResampleFilter defines the resampling algorithm used for image scaling.
type ResampleFilter int

const (
	// NearestNeighborFilter uses nearest-neighbor sampling (fastest, blocky).
	NearestNeighborFilter ResampleFilter = iota
	// BilinearFilter uses a triangle kernel.
	BilinearFilter
	// BicubicFilter uses the Catmull-Rom cubic (B=0, C=0.5).
	BicubicFilter
	// LanczosFilter uses a Lanczos window with a=3 (sharpest, default for padding).
	LanczosFilter
	// MitchellNetravaliFilter uses the Mitchell-Netravali cubic (B=1/3, C=1/3).
	MitchellNetravaliFilter
)

// String returns the lower-case filter name.
func (f ResampleFilter) String() string {
	switch f {
	case NearestNeighborFilter:
		return "nearest"
	case BilinearFilter:
		return "bilinear"
	case BicubicFilter:
		return "bicubic"
	case LanczosFilter:
		return "lanczos"
	case MitchellNetravaliFilter:
		return "mitchell"
	default:
		return "unknown"
	}
}

// kernel is a separable resampling kernel.
type kernel struct {
	// Support is the radius, in source pixels at scale 1, outside of which At is zero.
	Support float64
	// At evaluates the kernel at distance x from the sample center.
	At func(x float64) float64
}

// sinc is the normalized sinc function.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

var kernels = map[ResampleFilter]kernel{
	NearestNeighborFilter: {
		Support: 0.5,
		At: func(x float64) float64 {
			if math.Abs(x) < 0.5 {
				return 1.0
			}
			return 0.0
		},
	},
	BilinearFilter: {
		Support: 1.0,
		At: func(x float64) float64 {
			x = math.Abs(x)
			if x < 1.0 {
				return 1.0 - x
			}
			return 0.0
		},
	},
	BicubicFilter: {
		Support: 2.0,
		At: func(x float64) float64 {
			x = math.Abs(x)
			if x < 1.0 {
				return (1.5*x-2.5)*x*x + 1.0
			}
			if x < 2.0 {
				return ((-0.5*x+2.5)*x-4.0)*x + 2.0
			}
			return 0.0
		},
	},
	LanczosFilter: {
		Support: 3.0,
		At: func(x float64) float64 {
			x = math.Abs(x)
			if x >= 3.0 {
				return 0.0
			}
			return sinc(x) * sinc(x/3.0)
		},
	},
	MitchellNetravaliFilter: {
		Support: 2.0,
		At: func(x float64) float64 {
			x = math.Abs(x)
			if x < 1.0 {
				return ((1.16666666666667*x-2.0)*x)*x + 0.888888888888889
			}
			if x < 2.0 {
				return ((-0.388888888888889*x+2.0)*x-3.333333333333333)*x + 1.777777777777778
			}
			return 0.0
		},
	},
}

// contribution is the normalized weight of one source pixel for one output pixel.
type contribution struct {
	pixel  int
	weight float64
}

// contributions computes, for each of the dstSize output samples, the source
// samples that feed it and their weights. Weights for each output sample sum to 1.
//
// When downsampling the kernel is stretched by the scale factor so that every
// source pixel is averaged into the output instead of skipped.
func contributions(srcSize, dstSize int, k kernel) [][]contribution {
	scale := float64(srcSize) / float64(dstSize)
	filterScale := math.Max(scale, 1.0)
	support := k.Support * filterScale

	out := make([][]contribution, dstSize)
	for i := 0; i < dstSize; i++ {
		center := (float64(i) + 0.5) * scale

		lo := int(math.Floor(center - support))
		hi := int(math.Ceil(center + support))
		if lo < 0 {
			lo = 0
		}
		if hi >= srcSize {
			hi = srcSize - 1
		}

		var (
			weights []contribution
			sum     float64
		)
		for s := lo; s <= hi; s++ {
			w := k.At((float64(s) + 0.5 - center) / filterScale)
			if w == 0 {
				continue
			}
			weights = append(weights, contribution{pixel: s, weight: w})
			sum += w
		}

		if sum != 0 {
			for j := range weights {
				weights[j].weight /= sum
			}
		}
		out[i] = weights
	}
	return out
}

// Resize resamples img to width x height using the given filter.
//
// Resampling is separable: a horizontal pass into an intermediate buffer is
// followed by a vertical pass. The result is always a new *image.RGBA anchored
// at the origin; when the requested size equals the source size it is an exact
// pixel copy.
//
// Arguments:
//   - img: The source image.
//   - width: Target width in pixels.
//   - height: Target height in pixels.
//   - filter: The resampling filter.
//
// Returns:
//   - The resampled image, or nil when width or height is not positive.
//
// @example
// icon := Resize(src, 358, 358, LanczosFilter)
func Resize(img image.Image, width, height int, filter ResampleFilter) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}

	if bounds.Empty() {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	if filter == NearestNeighborFilter {
		return ResizeNearestNeighbor(img, width, height)
	}

	intermediate := image.NewRGBA(image.Rect(0, 0, width, bounds.Dy()))
	ResizeHorizontal(img, intermediate, filter)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	ResizeVertical(intermediate, dst, filter)

	return dst
}

// ResizeNearestNeighbor resamples src by picking the closest source pixel.
func ResizeNearestNeighbor(src image.Image, width, height int) *image.RGBA {
	bounds := src.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	xRatio := float64(srcWidth) / float64(width)
	yRatio := float64(srcHeight) / float64(height)

	Parallel(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcY := int((float64(y) + 0.5) * yRatio)
			if srcY >= srcHeight {
				srcY = srcHeight - 1
			}
			for x := 0; x < width; x++ {
				srcX := int((float64(x) + 0.5) * xRatio)
				if srcX >= srcWidth {
					srcX = srcWidth - 1
				}
				dst.Set(x, y, src.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
			}
		}
	})

	return dst
}

// ResizeHorizontal resamples each row of src into dst, which must have the
// target width and the same height as src.
//
// Pixels are accumulated in premultiplied 8-bit space.
func ResizeHorizontal(src image.Image, dst *image.RGBA, filter ResampleFilter) {
	srcBounds := src.Bounds()
	dstWidth := dst.Bounds().Dx()
	height := srcBounds.Dy()

	weights := contributions(srcBounds.Dx(), dstWidth, kernels[filter])

	Parallel(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcY := srcBounds.Min.Y + y
			for x := 0; x < dstWidth; x++ {
				var r, g, b, a float64
				for _, c := range weights[x] {
					sr, sg, sb, sa := src.At(srcBounds.Min.X+c.pixel, srcY).RGBA()
					r += float64(sr>>8) * c.weight
					g += float64(sg>>8) * c.weight
					b += float64(sb>>8) * c.weight
					a += float64(sa>>8) * c.weight
				}
				store(dst, dst.PixOffset(x, y), r, g, b, a)
			}
		}
	})
}

// ResizeVertical resamples each column of src into dst, which must have the
// target height and the same width as src.
func ResizeVertical(src *image.RGBA, dst *image.RGBA, filter ResampleFilter) {
	dstBounds := dst.Bounds()
	dstHeight := dstBounds.Dy()
	width := dstBounds.Dx()

	weights := contributions(src.Bounds().Dy(), dstHeight, kernels[filter])

	Parallel(width, func(partStart, partEnd int) {
		for x := partStart; x < partEnd; x++ {
			for y := 0; y < dstHeight; y++ {
				var r, g, b, a float64
				for _, c := range weights[y] {
					i := src.PixOffset(x, c.pixel)
					r += float64(src.Pix[i+0]) * c.weight
					g += float64(src.Pix[i+1]) * c.weight
					b += float64(src.Pix[i+2]) * c.weight
					a += float64(src.Pix[i+3]) * c.weight
				}
				store(dst, dst.PixOffset(x, y), r, g, b, a)
			}
		}
	})
}

// store writes an accumulated premultiplied sample into dst at offset i.
// Lanczos and bicubic lobes can overshoot; color channels are kept within
// [0, alpha] so the pixel stays a valid premultiplied value.
func store(dst *image.RGBA, i int, r, g, b, a float64) {
	a = Clamp(a, 0, 255)
	dst.Pix[i+0] = uint8(Clamp(r, 0, a) + 0.5)
	dst.Pix[i+1] = uint8(Clamp(g, 0, a) + 0.5)
	dst.Pix[i+2] = uint8(Clamp(b, 0, a) + 0.5)
	dst.Pix[i+3] = uint8(a + 0.5)
}

// Clamp restricts value to the range [min, max].
//
// @example
// clamped := Clamp(300.5, 0, 255) // 255
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Parallel splits [0, dataSize) into one contiguous partition per CPU and
// runs fn on each partition concurrently. It returns once every partition is
// done. Small inputs run inline on the calling goroutine.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	workers := runtime.NumCPU()
	if dataSize < workers*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * partSize
		end := start + partSize
		if i == workers-1 {
			end = dataSize
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
