// Package render draws the rotation summary image: one rounded panel per
// pool with its title, the changes since the previous rotation and the
// full current rotation, every map name coloured by festival.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"sort"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/rotation"
)

// ContentType is the MIME type of encoded summaries.
const ContentType = "image/png"

// Layout offsets within a panel.
const (
	headlineBaseline = 36
	subtitleBaseline = 72
	changesOffset    = 100
	textInset        = 20
	lineStep         = 32
	listStep         = 20
)

var (
	backgroundColor = color.RGBA{R: 0x1E, G: 0x1F, B: 0x22, A: 0xFF}
	panelColor      = color.NRGBA{A: 102} // black at 40%
)

// Config controls the summary layout.
type Config struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	PanelWidth   int     `yaml:"panel_width"`
	PanelHeight  int     `yaml:"panel_height"`
	PanelRadius  float32 `yaml:"panel_radius"`
	PanelSpacing int     `yaml:"panel_spacing"`
	PanelTop     int     `yaml:"panel_top"`

	// Background is an optional PNG or JPEG scaled to fill the canvas.
	Background string `yaml:"background"`

	// FontPath is an optional TTF/OTF file. Go Regular is used otherwise.
	FontPath string `yaml:"font_path"`
}

// DefaultConfig returns the standard 1300x800 layout.
func DefaultConfig() Config {
	return Config{
		Width:        1300,
		Height:       800,
		PanelWidth:   250,
		PanelHeight:  600,
		PanelRadius:  30,
		PanelSpacing: 50,
		PanelTop:     100,
	}
}

// Panel is the content of one pool's card.
type Panel struct {
	Pool    pool.Pool
	Diff    rotation.Difference
	Current []string
}

// Renderer draws summaries. It is safe for concurrent use.
type Renderer struct {
	cfg        Config
	catalog    *catalog.Catalog
	background image.Image

	mu    sync.Mutex // font faces are not safe for concurrent use
	faces *faces
}

// New creates a renderer, loading fonts and the background image up front.
func New(cfg Config, cat *catalog.Catalog) (*Renderer, error) {
	def := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		cfg.PanelWidth, cfg.PanelHeight = def.PanelWidth, def.PanelHeight
	}
	if cfg.PanelRadius < 0 {
		cfg.PanelRadius = 0
	}

	fc, err := loadFaces(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	r := &Renderer{cfg: cfg, catalog: cat, faces: fc}

	if cfg.Background != "" {
		bg, err := loadBackground(cfg.Background, cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		r.background = bg
	}
	return r, nil
}

func loadBackground(path string, w, h int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open background: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode background %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Render draws the summary. Every map name must resolve through the
// catalog; an unknown name returns catalog.ErrUnknownName.
func (r *Renderer) Render(panels []Panel) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
	if r.background != nil {
		draw.Draw(img, img.Bounds(), r.background, image.Point{}, draw.Src)
	} else {
		draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	}

	n := len(panels)
	total := n*r.cfg.PanelWidth + max(n-1, 0)*r.cfg.PanelSpacing
	x := (r.cfg.Width - total) / 2

	for _, p := range panels {
		if err := r.drawPanel(img, p, x, r.cfg.PanelTop); err != nil {
			return nil, fmt.Errorf("render: pool %s: %w", p.Pool.Key, err)
		}
		x += r.cfg.PanelWidth + r.cfg.PanelSpacing
	}
	return img, nil
}

// RenderPNG draws the summary and encodes it.
func (r *Renderer) RenderPNG(panels []Panel) ([]byte, error) {
	img, err := r.Render(panels)
	if err != nil {
		return nil, err
	}
	return Encode(img)
}

// Encode produces PNG bytes.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPanel(img *image.RGBA, p Panel, x, y int) error {
	lines, err := r.panelLines(p)
	if err != nil {
		return err
	}

	w := r.cfg.PanelWidth
	fillRoundedRect(img, image.Rect(x, y, x+w, y+r.cfg.PanelHeight), r.cfg.PanelRadius, panelColor)

	headline, subtitle := p.Pool.Lines()
	cx := x + w/2
	drawCentered(img, r.faces.title, headline, cx, y+headlineBaseline, Blue)
	if subtitle != "" {
		drawCentered(img, r.faces.subtitle, subtitle, cx, y+subtitleBaseline, Blue)
	}

	for _, l := range lines {
		face := r.faces.body
		if l.font == listFont {
			face = r.faces.list
		}
		tx := x + textInset
		for _, seg := range l.segments {
			tx = drawText(img, face, seg.text, tx, y+l.dy, seg.color)
		}
	}
	return nil
}

type fontRole int

const (
	bodyFont fontRole = iota
	listFont
)

// segment is a run of text drawn in one colour.
type segment struct {
	text  string
	color Color
}

// textLine is one left-aligned line of a panel body. dy is the baseline
// offset from the panel top.
type textLine struct {
	dy       int
	font     fontRole
	segments []segment
}

// panelLines lays out a panel body below the title: the changes block
// (additions under "+", removals under "-", each sorted) followed by the
// sorted current rotation. Names carry their festival colour.
func (r *Renderer) panelLines(p Panel) ([]textLine, error) {
	dy := changesOffset
	lines := []textLine{{dy: dy, segments: []segment{{"Changes:", White}}}}

	if p.Diff.Empty() {
		dy += lineStep
		lines = append(lines, textLine{dy: dy, segments: []segment{{"No changes.", Aqua}}})
	}
	for _, change := range []struct {
		prefix string
		c      Color
		names  []string
	}{
		{"+ ", Green, p.Diff.Added},
		{"- ", Red, p.Diff.Removed},
	} {
		for _, name := range sorted(change.names) {
			c, err := r.nameColor(name)
			if err != nil {
				return nil, err
			}
			dy += lineStep
			lines = append(lines, textLine{dy: dy, segments: []segment{{change.prefix, change.c}, {name, c}}})
		}
	}

	dy += lineStep
	lines = append(lines, textLine{dy: dy, segments: []segment{{"Current Rotation:", White}}})
	dy += listStep / 2

	for _, name := range sorted(p.Current) {
		c, err := r.nameColor(name)
		if err != nil {
			return nil, err
		}
		dy += listStep
		lines = append(lines, textLine{dy: dy, font: listFont, segments: []segment{{name, c}}})
	}
	return lines, nil
}

func (r *Renderer) nameColor(name string) (Color, error) {
	entry, err := r.catalog.ByName(name)
	if err != nil {
		return Gray, err
	}
	return FestivalColor(entry.Festival), nil
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
