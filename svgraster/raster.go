// Implements a raster backend previewing the state of a display,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var (
	_ svgpath.Drawer = (*rasterx.Filler)(nil) // assert interface conformance
	_ svgpath.Drawer = (*rasterx.Dasher)(nil)
)

// Renderer fills and strokes paths on an image.
type Renderer struct {
	bounds  image.Rectangle
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher // to avoid shared state
	filler  *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing on `img`, using
// a rasterx.ScannerGV.
func NewRenderer(img draw.Image) *Renderer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, b)
	return &Renderer{
		bounds:  b,
		scanner: scanner,
		dasher:  rasterx.NewDasher(w, h, scanner),
		filler:  rasterx.NewFiller(w, h, scanner),
	}
}

// SetClip restricts the drawing to `r`.
// An empty rectangle removes the restriction.
func (rd *Renderer) SetClip(r image.Rectangle) {
	if r.Empty() {
		r = rd.bounds
	}
	rd.scanner.SetClip(r.Intersect(rd.bounds))
}

// Fill fills `p` with `c`, using the non zero winding rule.
func (rd *Renderer) Fill(p svgpath.Path, c color.Color) {
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	rd.filler.SetColor(c)
	p.AddTo(rd.filler)
	rd.filler.Draw()
}

// Stroke draws the outline of `p` with a line of `width` pixels.
func (rd *Renderer) Stroke(p svgpath.Path, c color.Color, width float64) {
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(width*64), 4*64,
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	rd.dasher.SetColor(c)
	p.AddTo(rd.dasher)
	rd.dasher.Draw()
}

// Layer is the input of a preview: the shapes of a layer
// and its display state.
type Layer struct {
	View svgdisplay.LayerView
	// Outline is the content of the layer, in the user space
	// of the root element (before the display transform).
	Outline svgpath.Path
}

// Options customizes a preview. The zero value uses the defaults.
type Options struct {
	Background  color.Color   // default to white
	Palette     []color.Color // one color per layer, repeated if needed
	StrokeWidth float64       // of the frame rectangles, default to 1
}

var defaultPalette = []color.Color{
	color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.NRGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// RenderPreview draws the layers as a browser would show them in a viewport
// of size (width, height): for each layer, in order, the outline is
// filled with a translucent color, clipped to the layer clip rectangle,
// and the frame rectangle is stroked.
func RenderPreview(layers []Layer, width, height int, opts Options) *image.RGBA {
	if opts.Background == nil {
		opts.Background = color.White
	}
	if len(opts.Palette) == 0 {
		opts.Palette = defaultPalette
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	rd := NewRenderer(img)

	for i, layer := range layers {
		c := opts.Palette[i%len(opts.Palette)]
		v := layer.View

		if clip := pixelRect(v.ClipRect); !clip.Empty() {
			rd.SetClip(clip)
			rd.Fill(layer.Outline.Transform(v.Matrix), translucent(c))
		}

		rd.SetClip(image.Rectangle{})
		f := v.Frame
		rd.Stroke(svgpath.RectPath(f.X, f.Y, f.Width, f.Height, 0, 0), c, opts.StrokeWidth)
	}
	return img
}

// pixelRect returns the smallest pixel rectangle containing b
func pixelRect(b svgpath.Bounds) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H)),
	)
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x80}
}
