package images

import (
	"image"
	"image/color"
	"image/draw"
)

// NewCanvas allocates a width x height image filled with bg. The canvas is
// opaque: bg's alpha is ignored.
func NewCanvas(width, height int, bg color.RGBA) *image.RGBA {
	bg.A = 0xff
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return canvas
}

// Paste copies src onto dst with its top-left corner at at, clipped to dst.
//
// The paste is opaque: each destination pixel receives the source's straight
// (un-premultiplied) RGB with alpha 255. Source transparency is discarded,
// never blended with what was underneath.
func Paste(dst *image.RGBA, src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	// Offset from destination coordinates to source coordinates.
	d := sb.Min.Sub(at)

	switch s := src.(type) {
	case *image.RGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				si := s.PixOffset(x+d.X, y+d.Y)
				di := dst.PixOffset(x, y)
				a := s.Pix[si+3]
				dst.Pix[di+0] = unpremultiply(s.Pix[si+0], a)
				dst.Pix[di+1] = unpremultiply(s.Pix[si+1], a)
				dst.Pix[di+2] = unpremultiply(s.Pix[si+2], a)
				dst.Pix[di+3] = 0xff
			}
		}
	case *image.NRGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				si := s.PixOffset(x+d.X, y+d.Y)
				di := dst.PixOffset(x, y)
				copy(dst.Pix[di:di+3], s.Pix[si:si+3])
				dst.Pix[di+3] = 0xff
			}
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x+d.X, y+d.Y)).(color.NRGBA)
				dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
			}
		}
	}
}

// unpremultiply recovers a straight channel value from a premultiplied one.
func unpremultiply(c, a uint8) uint8 {
	switch a {
	case 0:
		return 0
	case 0xff:
		return c
	}
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
