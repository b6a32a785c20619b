package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

// a layer showing the square (0,0)-(10,10) in a 200x100 viewport,
// that is the pixels (50,0)-(150,100)
func squareView(clip bool) svgdisplay.LayerView {
	g := svgdisplay.Geometry{CX: 5, CY: 5, Width: 10, Height: 10, Clip: clip}
	f := svgdisplay.FitViewport(g, 200, 100)
	clipRect := svgpath.Bounds{W: 200, H: 100}
	if clip {
		clipRect = svgpath.Bounds{X: f.X, Y: f.Y, W: f.Width, H: f.Height}
	}
	return svgdisplay.LayerView{
		Geometry: g,
		Frame:    f,
		ClipRect: clipRect,
		Matrix:   svgdisplay.LayerMatrix(g, f),
	}
}

func TestRenderPreviewClip(t *testing.T) {
	// wider than the frame
	outline := svgpath.RectPath(0, 0, 20, 10, 0, 0)

	img := RenderPreview([]Layer{{View: squareView(true), Outline: outline}}, 200, 100, Options{})
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	assert.NotEqual(t, white, img.RGBAAt(100, 50))
	assert.Equal(t, white, img.RGBAAt(170, 50))
	assert.Equal(t, white, img.RGBAAt(20, 50))

	img = RenderPreview([]Layer{{View: squareView(false), Outline: outline}}, 200, 100, Options{})
	assert.NotEqual(t, white, img.RGBAAt(100, 50))
	assert.NotEqual(t, white, img.RGBAAt(170, 50))
	assert.Equal(t, white, img.RGBAAt(20, 50))
}

func TestRenderPreviewFrame(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	img := RenderPreview([]Layer{{View: squareView(true)}}, 200, 100, Options{
		Background:  color.Black,
		Palette:     []color.Color{red},
		StrokeWidth: 4,
	})
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(50, 50))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(149, 50))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(100, 50))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(20, 50))
}

func TestEncode(t *testing.T) {
	outline := svgpath.EllipsePath(5, 5, 4, 4)
	img := RenderPreview([]Layer{{View: squareView(true), Outline: outline}}, 200, 100, Options{})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG))
	fromPNG, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), fromPNG.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, WebP))
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))
	fromWebP, err := webp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), fromWebP.Bounds())
	for _, p := range []image.Point{{0, 0}, {100, 50}, {60, 10}} {
		r1, g1, b1, _ := img.At(p.X, p.Y).RGBA()
		r2, g2, b2, _ := fromWebP.At(p.X, p.Y).RGBA()
		assert.Equal(t, [3]uint32{r1, g1, b1}, [3]uint32{r2, g2, b2}, "pixel %v", p)
	}

	assert.Error(t, Encode(&buf, img, "gif"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	f, err = ParseFormat("webp")
	require.NoError(t, err)
	assert.Equal(t, WebP, f)
	_, err = ParseFormat("jpeg")
	assert.Error(t, err)
}
