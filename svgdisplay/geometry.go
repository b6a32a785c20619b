package svgdisplay

import (
	"math"

	"github.com/benoitkugler/svgshow/svgpath"
)

// Geometry is the view state of a layer: the point of the document
// shown at the center of the viewport, the extent of the document
// made visible, and the rotation of the view, in degrees.
// All lengths are in document units.
type Geometry struct {
	CX     float64 `yaml:"cx"`
	CY     float64 `yaml:"cy"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Rotate float64 `yaml:"rotate"`
	// Clip restricts the visible region of the layer to the
	// frame rectangle; otherwise the whole viewport is used.
	Clip bool `yaml:"clip"`
}

// DefaultGeometry is the state of a layer right after setup.
var DefaultGeometry = Geometry{Width: 1, Height: 1, Clip: true}

// FrameGeometry is a possibly partial Geometry, as found in
// authored frames: nil fields are left untouched by ShowFrame.
type FrameGeometry struct {
	CX     *float64 `yaml:"cx,omitempty"`
	CY     *float64 `yaml:"cy,omitempty"`
	Width  *float64 `yaml:"width,omitempty"`
	Height *float64 `yaml:"height,omitempty"`
	Rotate *float64 `yaml:"rotate,omitempty"`
	Clip   *bool    `yaml:"clip,omitempty"`
}

// LayerFrame is the description of one layer in a frame.
type LayerFrame struct {
	Geometry FrameGeometry `yaml:"geometry"`
}

// Frame is a view of the document: a geometry for each layer.
type Frame struct {
	Layers map[string]LayerFrame `yaml:"layers"`
}

// Frame returns the complete FrameGeometry equivalent to g.
func (g Geometry) Frame() FrameGeometry {
	return FrameGeometry{
		CX:     &g.CX,
		CY:     &g.CY,
		Width:  &g.Width,
		Height: &g.Height,
		Rotate: &g.Rotate,
		Clip:   &g.Clip,
	}
}

// applyTo copies the fields present in fg into g
func (fg FrameGeometry) applyTo(g *Geometry) {
	if fg.CX != nil {
		g.CX = *fg.CX
	}
	if fg.CY != nil {
		g.CY = *fg.CY
	}
	if fg.Width != nil {
		g.Width = *fg.Width
	}
	if fg.Height != nil {
		g.Height = *fg.Height
	}
	if fg.Rotate != nil {
		g.Rotate = *fg.Rotate
	}
	if fg.Clip != nil {
		g.Clip = *fg.Clip
	}
}

// ViewportFrame is the rectangle, in viewport pixels, where
// the frame of a layer is displayed, together with the scale
// from document units to pixels.
type ViewportFrame struct {
	X, Y, Width, Height float64
	Scale               float64
}

// FitViewport computes where the geometry `g` is shown
// in a viewport of size (width, height): the frame is scaled
// to fit the viewport, preserving its aspect ratio, and centered.
func FitViewport(g Geometry, width, height float64) ViewportFrame {
	scale := math.Min(width/g.Width, height/g.Height)
	w, h := g.Width*scale, g.Height*scale
	return ViewportFrame{
		X:      (width - w) / 2,
		Y:      (height - h) / 2,
		Width:  w,
		Height: h,
		Scale:  scale,
	}
}

// Element is a node of the scene whose geometry may be
// used to define a frame.
type Element interface {
	// CTM maps the local coordinates of the element
	// to the user space of the document.
	CTM() svgpath.Matrix2D
	// Rect returns the x, y, width, height attributes of
	// a rectangle element, and false for other elements.
	Rect() (svgpath.Bounds, bool)
	// BBox is the bounding box of the element, in local coordinates.
	BBox() svgpath.Bounds
}

// ElementGeometry proposes a frame geometry matching the
// rectangle covered by `e`. Clip is left unset.
func ElementGeometry(e Element) FrameGeometry {
	box, isRect := e.Rect()
	if !isRect {
		box = e.BBox()
	}
	g := ComputeElementGeometry(e.CTM(), box)
	fg := g.Frame()
	fg.Clip = nil
	return fg
}

// ComputeElementGeometry returns the geometry of the local box `box`
// seen through the transform `ctm`.
// The transform is assumed to be a similarity: skewed or non uniformly
// scaled transforms give an approximate result, where the scale
// is read from the first column of the matrix.
func ComputeElementGeometry(ctm svgpath.Matrix2D, box svgpath.Bounds) Geometry {
	scale := math.Sqrt(ctm.A*ctm.A + ctm.B*ctm.B)
	cx, cy := ctm.Transform(box.Center())
	return Geometry{
		CX:     cx,
		CY:     cy,
		Width:  box.W * scale,
		Height: box.H * scale,
		Rotate: math.Atan2(ctm.B, ctm.A) * 180 / math.Pi,
		Clip:   true,
	}
}

// normalizeAngle returns the angle in [0, 360)
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 { // rounding of tiny negative angles
		deg = 0
	}
	return deg
}
