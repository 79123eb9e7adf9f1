package render

import (
	"image/color"

	"github.com/xraph/rotawatch/catalog"
)

// Color is one of the 16 named chat colours. Every colour has a fixed
// shadow colour drawn behind text two pixels down and to the right.
type Color int

// Named colours.
const (
	Black Color = iota
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
)

type swatch struct {
	name   string
	fg     color.RGBA
	shadow color.RGBA
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

var palette = [...]swatch{
	Black:       {"black", rgb(0x000000), rgb(0x000000)},
	DarkBlue:    {"dark_blue", rgb(0x0000AA), rgb(0x00002A)},
	DarkGreen:   {"dark_green", rgb(0x00AA00), rgb(0x002A00)},
	DarkAqua:    {"dark_aqua", rgb(0x00AAAA), rgb(0x002A2A)},
	DarkRed:     {"dark_red", rgb(0xAA0000), rgb(0x2A0000)},
	DarkPurple:  {"dark_purple", rgb(0xAA00AA), rgb(0x2A002A)},
	Gold:        {"gold", rgb(0xFFAA00), rgb(0x3F2A00)},
	Gray:        {"gray", rgb(0xAAAAAA), rgb(0x2A2A2A)},
	DarkGray:    {"dark_gray", rgb(0x555555), rgb(0x151515)},
	Blue:        {"blue", rgb(0x5555FF), rgb(0x15153F)},
	Green:       {"green", rgb(0x55FF55), rgb(0x153F15)},
	Aqua:        {"aqua", rgb(0x55FFFF), rgb(0x153F3F)},
	Red:         {"red", rgb(0xFF5555), rgb(0x3F1515)},
	LightPurple: {"light_purple", rgb(0xFF55FF), rgb(0x3F153F)},
	Yellow:      {"yellow", rgb(0xFFFF55), rgb(0x3F3F15)},
	White:       {"white", rgb(0xFFFFFF), rgb(0x3F3F3F)},
}

func (c Color) swatch() swatch {
	if c < 0 || int(c) >= len(palette) {
		return palette[White]
	}
	return palette[c]
}

// RGBA returns the text colour.
func (c Color) RGBA() color.RGBA { return c.swatch().fg }

// Shadow returns the shadow colour.
func (c Color) Shadow() color.RGBA { return c.swatch().shadow }

// String returns the colour's name.
func (c Color) String() string { return c.swatch().name }

// FestivalColor returns the colour a map name is drawn in.
func FestivalColor(f catalog.Festival) Color {
	switch f {
	case catalog.FestivalEaster:
		return Green
	case catalog.FestivalSummer:
		return Yellow
	case catalog.FestivalHalloween:
		return Gold
	case catalog.FestivalWinter:
		return Red
	default:
		return Gray
	}
}
