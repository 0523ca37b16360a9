package images

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/draw"
)

// Checksum generates a deterministic checksum of an image's pixels, used to
// verify that a transformation is idempotent.
//
// The pixels are first normalized to an origin-anchored *image.RGBA so two
// images with the same content and size hash equally regardless of their
// concrete type or bounds offset.
//
// Returns:
//   - A hex-encoded MD5 checksum, or "empty" for a nil or empty image.
//
// Example:
//
// ```go
//
//	fmt.Printf("padded checksum: %s\n", Checksum(canvas))
//
// ```
func Checksum(img image.Image) string {
	if img == nil || img.Bounds().Empty() {
		return "empty"
	}

	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d:", b.Dx(), b.Dy())
	hash.Write(rgba.Pix[:4*b.Dx()*b.Dy()])
	return fmt.Sprintf("%x", hash.Sum(nil))
}
