package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// fillRoundedRect composites c over dst inside r with corners of the given
// radius. Corners are quadratic curves with the rectangle corner as the
// control point.
func fillRoundedRect(dst draw.Image, r image.Rectangle, radius float32, c color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	x0 := float32(r.Min.X - b.Min.X)
	y0 := float32(r.Min.Y - b.Min.Y)
	x1 := float32(r.Max.X - b.Min.X)
	y1 := float32(r.Max.Y - b.Min.Y)

	if maxR := min(x1-x0, y1-y0) / 2; radius > maxR {
		radius = maxR
	}

	z.MoveTo(x0+radius, y0)
	z.LineTo(x1-radius, y0)
	z.QuadTo(x1, y0, x1, y0+radius)
	z.LineTo(x1, y1-radius)
	z.QuadTo(x1, y1, x1-radius, y1)
	z.LineTo(x0+radius, y1)
	z.QuadTo(x0, y1, x0, y1-radius)
	z.LineTo(x0, y0+radius)
	z.QuadTo(x0, y0, x0+radius, y0)
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
