// Package svgdisplay computes and applies the transforms
// showing the layers of an SVG document in a viewport.
//
// Each layer has its own view state (a Geometry). The display fits
// this state in the viewport, and writes the resulting transform and
// clipping rectangle in the scene. Gestures (drag, zoom, rotate)
// and frame changes mutate the states, then repaint every layer.
//
// A Display is not safe for concurrent use: calls are expected to be
// serialized by the host event loop.
package svgdisplay

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/svgshow/svgpath"
	"github.com/sirupsen/logrus"
)

// ErrAlreadySetup is returned when Setup is called twice.
var ErrAlreadySetup = errors.New("display already set up")

// DefaultClipPathPrefix prefixes the id of the clip paths created at setup.
const DefaultClipPathPrefix = "svgshow-clip-path-"

// Scene is the live document the display reshapes and paints into.
type Scene interface {
	// BBox returns the bounding box of the whole drawing,
	// in the user space of the root element.
	BBox() svgpath.Bounds
	// SetSize sets the size of the root element, in pixels.
	SetSize(width, height float64)
	// WrapLayer encloses the layer group `id` in a new group,
	// clipped by a new clip path named `clipPathID`.
	// The new group takes the place of the layer group.
	WrapLayer(id, clipPathID string) (LayerHandle, error)
}

// LayerHandle gives write access to the nodes owned by a layer.
type LayerHandle interface {
	// SetClipRect updates the rectangle of the clip path.
	SetClipRect(x, y, width, height float64)
	// SetTransform updates the transform attribute of the layer group.
	SetTransform(transform string)
}

// Options customizes a Display. The zero value is valid.
type Options struct {
	// ClipPathPrefix defaults to DefaultClipPathPrefix
	ClipPathPrefix string
	// Logger defaults to the logrus standard logger
	Logger logrus.FieldLogger
}

type layer struct {
	id       string
	geometry Geometry
	handle   LayerHandle
}

// Display owns the layer registry of a scene.
type Display struct {
	scene         Scene
	width, height float64 // viewport size

	initialBBox svgpath.Bounds
	layers      map[string]*layer
	order       []string // setup order

	isSetup  bool
	setupErr error // the scene is partially wrapped
	ready    []func(*Display)

	clipPathPrefix string
	log            logrus.FieldLogger
}

// New returns a display for `scene`, shown in a viewport of
// size (width, height). Setup must be called before any other operation.
func New(scene Scene, width, height float64, opts Options) *Display {
	d := &Display{
		scene:          scene,
		width:          width,
		height:         height,
		layers:         make(map[string]*layer),
		clipPathPrefix: opts.ClipPathPrefix,
		log:            opts.Logger,
	}
	if d.clipPathPrefix == "" {
		d.clipPathPrefix = DefaultClipPathPrefix
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	return d
}

// OnReady registers a function called once Setup has completed.
func (d *Display) OnReady(fn func(*Display)) {
	d.ready = append(d.ready, fn)
}

// Setup prepares the scene, once the document is loaded:
// it records the bounding box of the document, sizes the root to the
// viewport and wraps each layer of `layerIDs` in a clipped group.
// The ready callbacks are then invoked.
//
// Duplicate ids are rejected before the scene is modified. If wrapping
// a layer fails, the layers already wrapped stay in the scene, which is
// then unusable: later calls to Setup return the same error.
func (d *Display) Setup(layerIDs []string) error {
	if d.isSetup {
		return ErrAlreadySetup
	}
	if d.setupErr != nil {
		return d.setupErr
	}
	seen := make(map[string]bool, len(layerIDs))
	for _, id := range layerIDs {
		if seen[id] {
			return fmt.Errorf("duplicate layer %q", id)
		}
		seen[id] = true
	}

	d.initialBBox = d.scene.BBox()
	d.scene.SetSize(d.width, d.height)

	for _, id := range layerIDs {
		handle, err := d.scene.WrapLayer(id, d.clipPathPrefix+id)
		if err != nil {
			d.setupErr = fmt.Errorf("setting up layer %q: %w", id, err)
			d.layers, d.order = make(map[string]*layer), nil
			return d.setupErr
		}
		d.layers[id] = &layer{id: id, geometry: DefaultGeometry, handle: handle}
		d.order = append(d.order, id)
		d.log.WithField("layer", id).Debug("layer wrapped in clip group")
	}
	d.isSetup = true

	for _, fn := range d.ready {
		fn(d)
	}
	return nil
}

// Viewport returns the current viewport size.
func (d *Display) Viewport() (width, height float64) { return d.width, d.height }

// LayerIDs returns the registered layers, in setup order.
func (d *Display) LayerIDs() []string { return append([]string(nil), d.order...) }

// Geometry returns the current state of the layer `id`.
func (d *Display) Geometry(id string) (Geometry, bool) {
	l, ok := d.layers[id]
	if !ok {
		return Geometry{}, false
	}
	return l.geometry, true
}

// SetGeometry overwrites the state of the layer `id`, without
// repainting. It is meant for hosts animating the display, which
// call Update once per step.
func (d *Display) SetGeometry(id string, g Geometry) bool {
	l, ok := d.layers[id]
	if ok {
		l.geometry = g
	}
	return ok
}

// Resize reacts to a change of the viewport size.
func (d *Display) Resize(width, height float64) {
	d.width, d.height = width, height
	d.scene.SetSize(width, height)
	d.Update()
}

// Update recomputes and writes the transform and the clipping
// rectangle of every layer.
func (d *Display) Update() {
	for _, id := range d.order {
		l := d.layers[id]
		frame := FitViewport(l.geometry, d.width, d.height)
		clip := clipRect(l.geometry, frame, d.width, d.height)
		l.handle.SetClipRect(clip.X, clip.Y, clip.W, clip.H)
		l.handle.SetTransform(LayerTransform(l.geometry, frame))
	}
}

// ShowFrame moves to the frame `f`: the fields defined in `f`
// are copied in the layer states, which are then repainted.
// Layers not registered at setup are ignored.
func (d *Display) ShowFrame(f Frame) {
	for id, lf := range f.Layers {
		l, ok := d.layers[id]
		if !ok {
			d.log.WithField("layer", id).Debug("frame refers to an unknown layer")
			continue
		}
		lf.Geometry.applyTo(&l.geometry)
	}
	d.Update()
}

// Drag pans every layer by (dx, dy) viewport pixels.
// Layers are no more clipped to their frame.
func (d *Display) Drag(dx, dy float64) {
	for _, id := range d.order {
		g := &d.layers[id].geometry
		scale := FitViewport(*g, d.width, d.height).Scale
		sin, cos := math.Sincos(g.Rotate * math.Pi / 180)
		g.CX -= (dx*cos - dy*sin) / scale
		g.CY -= (dx*sin + dy*cos) / scale
		g.Clip = false
	}
	d.Update()
}

// Zoom scales every layer by `factor` (greater than 1 to zoom in),
// keeping the point (x, y) of the viewport fixed.
// `factor` must not be 0. A factor of 1 does nothing.
func (d *Display) Zoom(factor, x, y float64) {
	if factor == 1 {
		return
	}
	for _, id := range d.order {
		g := &d.layers[id].geometry
		g.Width /= factor
		g.Height /= factor
	}
	// the compensation uses the scale of the zoomed geometry
	d.Drag((1-factor)*(x-d.width/2), (1-factor)*(y-d.height/2))
}

// Rotate adds `angle` degrees to the rotation of every layer.
func (d *Display) Rotate(angle float64) {
	for _, id := range d.order {
		g := &d.layers[id].geometry
		g.Rotate = normalizeAngle(g.Rotate + angle)
	}
	d.Update()
}

// DocumentBBox returns the bounding box recorded at setup.
func (d *Display) DocumentBBox() svgpath.Bounds { return d.initialBBox }

// DocumentGeometry returns a frame showing the whole document
// (as it was at setup) in every layer.
func (d *Display) DocumentGeometry() Frame {
	cx, cy := d.initialBBox.Center()
	g := Geometry{
		CX:     cx,
		CY:     cy,
		Width:  d.initialBBox.W,
		Height: d.initialBBox.H,
	}
	out := Frame{Layers: make(map[string]LayerFrame, len(d.order))}
	for _, id := range d.order {
		out.Layers[id] = LayerFrame{Geometry: g.Frame()}
	}
	return out
}

// LayerView is a snapshot of the display state of a layer.
type LayerView struct {
	ID       string
	Geometry Geometry
	Frame    ViewportFrame
	// ClipRect is the visible region, in viewport pixels
	ClipRect svgpath.Bounds
	// Matrix maps the document to the viewport
	Matrix svgpath.Matrix2D
}

// Layers returns the current state of every layer, in setup order.
func (d *Display) Layers() []LayerView {
	out := make([]LayerView, 0, len(d.order))
	for _, id := range d.order {
		g := d.layers[id].geometry
		frame := FitViewport(g, d.width, d.height)
		out = append(out, LayerView{
			ID:       id,
			Geometry: g,
			Frame:    frame,
			ClipRect: clipRect(g, frame, d.width, d.height),
			Matrix:   LayerMatrix(g, frame),
		})
	}
	return out
}
