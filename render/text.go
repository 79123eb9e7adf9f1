package render

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font sizes in pixels at 72 DPI.
const (
	titleSize    = 32
	subtitleSize = 20
	bodySize     = 24
	listSize     = 18

	shadowOffset = 2
)

// faces holds the font faces used on a summary.
type faces struct {
	title    font.Face
	subtitle font.Face
	body     font.Face
	list     font.Face
}

// loadFaces parses the font at path, or Go Regular when path is empty.
func loadFaces(path string) (*faces, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("render: read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var fc faces
	for _, s := range []struct {
		dst  *font.Face
		size float64
	}{
		{&fc.title, titleSize},
		{&fc.subtitle, subtitleSize},
		{&fc.body, bodySize},
		{&fc.list, listSize},
	} {
		face, err := newFace(s.size)
		if err != nil {
			return nil, fmt.Errorf("render: font face %vpx: %w", s.size, err)
		}
		*s.dst = face
	}
	return &fc, nil
}

// drawText draws s with its baseline at (x, y), shadow first. It returns
// the x position just past the text.
func drawText(dst draw.Image, face font.Face, s string, x, y int, c Color) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Shadow()),
		Face: face,
		Dot:  fixed.P(x+shadowOffset, y+shadowOffset),
	}
	d.DrawString(s)

	d.Src = image.NewUniform(c.RGBA())
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

// drawCentered draws s horizontally centred on cx.
func drawCentered(dst draw.Image, face font.Face, s string, cx, y int, c Color) {
	w := font.MeasureString(face, s).Ceil()
	drawText(dst, face, s, cx-w/2, y, c)
}
