// Package presentation reads the frames of a presentation
// from a YAML file, and steps through them on a display.
//
// A presentation file looks like
//
//	title: My talk
//	layers: [background, content]
//	frames:
//	  - id: intro
//	    layers:
//	      background: {cx: 400, cy: 300, width: 800, height: 600, clip: false}
//	      content: {element: frame1, clip: true}
//
// A layer may reference an element of the document: its geometry is
// then read from the element (see svgdisplay.ElementGeometry), and the
// fields given explicitly take precedence.
package presentation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/svgshow/svgdisplay"
	"gopkg.in/yaml.v3"
)

var errNoLayers = errors.New("presentation has no layers")

// Presentation is the content of a presentation file.
type Presentation struct {
	Title string `yaml:"title,omitempty"`
	// Layers are the ids of the groups handled by the display,
	// in document order.
	Layers []string `yaml:"layers"`
	Frames []Frame  `yaml:"frames"`
}

// Frame is one step of the presentation.
type Frame struct {
	ID     string                `yaml:"id,omitempty"`
	Title  string                `yaml:"title,omitempty"`
	Layers map[string]LayerFrame `yaml:"layers"`
}

// LayerFrame describes the view of one layer in a frame.
type LayerFrame struct {
	// Element is the id of the element framed by the layer. Optional.
	Element string `yaml:"element,omitempty"`

	svgdisplay.FrameGeometry `yaml:",inline"`
}

// ElementFinder gives access to the elements of the document.
type ElementFinder interface {
	FindElement(id string) (svgdisplay.Element, error)
}

// Load reads a presentation from `r` and checks it:
// frame ids must be unique and frames may only refer to
// the declared layers.
func Load(r io.Reader) (*Presentation, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Presentation
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, errNoLayers
		}
		return nil, fmt.Errorf("reading presentation: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads the presentation file at `path`.
func LoadFile(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func (p *Presentation) validate() error {
	if len(p.Layers) == 0 {
		return errNoLayers
	}
	layers := make(map[string]bool, len(p.Layers))
	for _, id := range p.Layers {
		if layers[id] {
			return fmt.Errorf("duplicate layer %q", id)
		}
		layers[id] = true
	}
	frames := make(map[string]bool, len(p.Frames))
	for i, fr := range p.Frames {
		if fr.ID != "" {
			if frames[fr.ID] {
				return fmt.Errorf("duplicate frame id %q", fr.ID)
			}
			frames[fr.ID] = true
		}
		for id := range fr.Layers {
			if !layers[id] {
				return fmt.Errorf("frame %d (%s): unknown layer %q", i+1, fr.ID, id)
			}
		}
	}
	return nil
}

// IndexOf returns the index of the frame with the given id, or -1.
func (p *Presentation) IndexOf(id string) int {
	for i, fr := range p.Frames {
		if fr.ID == id {
			return i
		}
	}
	return -1
}

// Resolve returns the display frames, reading the geometry of
// the referenced elements with `finder`.
func (p *Presentation) Resolve(finder ElementFinder) ([]svgdisplay.Frame, error) {
	out := make([]svgdisplay.Frame, len(p.Frames))
	for i, fr := range p.Frames {
		out[i].Layers = make(map[string]svgdisplay.LayerFrame, len(fr.Layers))
		for id, lf := range fr.Layers {
			g, err := lf.resolve(finder)
			if err != nil {
				return nil, fmt.Errorf("frame %d (%s), layer %q: %w", i+1, fr.ID, id, err)
			}
			out[i].Layers[id] = svgdisplay.LayerFrame{Geometry: g}
		}
	}
	return out, nil
}

func (lf LayerFrame) resolve(finder ElementFinder) (svgdisplay.FrameGeometry, error) {
	if lf.Element == "" {
		return lf.FrameGeometry, nil
	}
	el, err := finder.FindElement(lf.Element)
	if err != nil {
		return svgdisplay.FrameGeometry{}, err
	}
	out := svgdisplay.ElementGeometry(el)
	// explicit fields win
	if lf.CX != nil {
		out.CX = lf.CX
	}
	if lf.CY != nil {
		out.CY = lf.CY
	}
	if lf.Width != nil {
		out.Width = lf.Width
	}
	if lf.Height != nil {
		out.Height = lf.Height
	}
	if lf.Rotate != nil {
		out.Rotate = lf.Rotate
	}
	if lf.Clip != nil {
		out.Clip = lf.Clip
	}
	return out, nil
}
