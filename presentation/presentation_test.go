package presentation

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgscene"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drawing = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">
  <g id="background"><rect x="0" y="0" width="400" height="300"/></g>
  <g id="content">
    <rect id="frame1" x="10" y="20" width="80" height="40"/>
    <rect id="frame2" x="100" y="100" width="50" height="50" transform="rotate(45 125 125)"/>
  </g>
</svg>`

const talk = `title: Demo
layers: [background, content]
frames:
  - id: overview
    title: The whole thing
    layers:
      background: {cx: 200, cy: 150, width: 400, height: 300, clip: false}
      content: {cx: 200, cy: 150, width: 400, height: 300}
  - id: first
    layers:
      content: {element: frame1, clip: true}
  - id: second
    layers:
      content:
        element: frame2
        width: 100
`

func setup(t *testing.T) (*svgscene.Document, *svgdisplay.Display, *Presentation) {
	t.Helper()
	doc, err := svgscene.Load(strings.NewReader(drawing), svgscene.Options{ErrorMode: svgscene.StrictErrorMode})
	require.NoError(t, err)
	p, err := Load(strings.NewReader(talk))
	require.NoError(t, err)
	display := svgdisplay.New(doc, 800, 600, svgdisplay.Options{})
	require.NoError(t, display.Setup(p.Layers))
	return doc, display, p
}

func TestLoad(t *testing.T) {
	p, err := Load(strings.NewReader(talk))
	require.NoError(t, err)
	assert.Equal(t, "Demo", p.Title)
	assert.Equal(t, []string{"background", "content"}, p.Layers)
	require.Len(t, p.Frames, 3)
	assert.Equal(t, "The whole thing", p.Frames[0].Title)

	bg := p.Frames[0].Layers["background"]
	require.NotNil(t, bg.Clip)
	assert.False(t, *bg.Clip)
	assert.Equal(t, 400., *bg.Width)
	assert.Nil(t, bg.Rotate)

	second := p.Frames[2].Layers["content"]
	assert.Equal(t, "frame2", second.Element)
	assert.Equal(t, 100., *second.Width)
	assert.Nil(t, second.Height)

	assert.Equal(t, 1, p.IndexOf("first"))
	assert.Equal(t, -1, p.IndexOf("nope"))
}

func TestLoadInvalid(t *testing.T) {
	for _, src := range []string{
		"",
		"frames: []",
		"layers: [a, a]",
		"layers: [a]\nframes:\n  - layers: {b: {cx: 1}}",
		"layers: [a]\nframes:\n  - id: f\n  - id: f",
		"layers: [a]\nframes:\n  - layers: {a: {zoom: 2}}",
		"layers: [a\n",
	} {
		_, err := Load(strings.NewReader(src))
		assert.Error(t, err, src)
	}
}

func TestResolve(t *testing.T) {
	doc, _, p := setup(t)
	frames, err := p.Resolve(doc)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	want := svgdisplay.Geometry{CX: 200, CY: 150, Width: 400, Height: 300}.Frame()
	want.Rotate = nil
	if diff := cmp.Diff(want, frames[0].Layers["background"].Geometry); diff != "" {
		t.Errorf("background geometry (-want +got):\n%s", diff)
	}

	first := frames[1].Layers["content"].Geometry
	assert.InDelta(t, 50, *first.CX, 1e-9)
	assert.InDelta(t, 40, *first.CY, 1e-9)
	assert.InDelta(t, 80, *first.Width, 1e-9)
	assert.InDelta(t, 40, *first.Height, 1e-9)
	assert.InDelta(t, 0, *first.Rotate, 1e-9)
	assert.True(t, *first.Clip)

	second := frames[2].Layers["content"].Geometry
	assert.InDelta(t, 125, *second.CX, 1e-9)
	assert.InDelta(t, 125, *second.CY, 1e-9)
	assert.Equal(t, 100., *second.Width)
	assert.InDelta(t, 50, *second.Height, 1e-9)
	assert.InDelta(t, 45, *second.Rotate, 1e-9)
	assert.Nil(t, second.Clip)

	p.Frames[1].Layers["content"] = LayerFrame{Element: "missing"}
	_, err = p.Resolve(doc)
	assert.ErrorIs(t, err, svgscene.ErrNotFound)
}

func TestPlayer(t *testing.T) {
	doc, display, p := setup(t)
	pl, err := NewPlayer(display, p, doc, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, pl.Len())
	assert.Equal(t, -1, pl.Current())
	_, ok := pl.CurrentFrame()
	assert.False(t, ok)

	assert.False(t, pl.Previous())
	pl.Start()
	assert.Equal(t, 0, pl.Current())
	g, _ := display.Geometry("background")
	assert.Equal(t, svgdisplay.Geometry{CX: 200, CY: 150, Width: 400, Height: 300}, g)
	g, _ = display.Geometry("content")
	assert.True(t, g.Clip) // untouched by the frame

	assert.True(t, pl.Next())
	g, _ = display.Geometry("content")
	assert.InDelta(t, 80, g.Width, 1e-9)
	// background keeps the state of the previous frame
	g, _ = display.Geometry("background")
	assert.Equal(t, 400., g.Width)

	assert.True(t, pl.Next())
	assert.False(t, pl.Next())
	assert.Equal(t, 2, pl.Current())
	fr, ok := pl.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, "second", fr.ID)

	assert.True(t, pl.Previous())
	assert.Equal(t, 1, pl.Current())

	require.NoError(t, pl.JumpToID("overview"))
	assert.Equal(t, 0, pl.Current())
	assert.Error(t, pl.JumpToID("nope"))
	assert.Error(t, pl.JumpTo(3))
	assert.Error(t, pl.JumpTo(-1))

	pl.Last()
	assert.Equal(t, 2, pl.Current())
	pl.First()
	assert.Equal(t, 0, pl.Current())
}
