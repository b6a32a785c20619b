package svgscene

import (
	"github.com/beevik/etree"
	"github.com/benoitkugler/svgshow/svgpath"
)

// Element is a node of the document. It gives access to the
// geometric queries a browser offers on SVG elements.
type Element struct {
	doc *Document
	el  *etree.Element
}

// ID returns the id attribute, or an empty string.
func (e *Element) ID() string { return e.el.SelectAttrValue("id", "") }

// Tag returns the local name of the element.
func (e *Element) Tag() string { return e.el.Tag }

// Node returns the underlying DOM node.
func (e *Element) Node() *etree.Element { return e.el }

// Transform returns the matrix defined by the transform attribute of the element.
func (e *Element) Transform() svgpath.Matrix2D { return e.doc.transformOf(e.el) }

// CTM returns the current transformation matrix, mapping the local
// coordinates of the element to the user space of the root element.
// The transforms written by the display on layer groups are not
// taken into account: the authored ones are used instead.
func (e *Element) CTM() svgpath.Matrix2D {
	m := e.doc.transformOf(e.el)
	for p := e.el.Parent(); p != nil && p != e.doc.root; p = p.Parent() {
		m = e.doc.transformOf(p).Mult(m)
	}
	return m
}

// Rect returns the x, y, width and height attributes of
// a <rect> element. The boolean is false for other elements.
func (e *Element) Rect() (svgpath.Bounds, bool) {
	if e.el.Tag != "rect" {
		return svgpath.Bounds{}, false
	}
	return svgpath.Bounds{
		X: e.doc.length(e.el, "x"),
		Y: e.doc.length(e.el, "y"),
		W: e.doc.length(e.el, "width"),
		H: e.doc.length(e.el, "height"),
	}, true
}

// BBox returns the tight bounding box of the element,
// in its local coordinates (its own transform is not applied).
// Unsupported or empty elements return a zero box.
func (e *Element) BBox() svgpath.Bounds {
	ext := e.doc.bbox(e.el, make(map[*etree.Element]bool))
	return ext.Bounds()
}

func (d *Document) transformOf(el *etree.Element) svgpath.Matrix2D {
	if m, ok := d.authored[el]; ok {
		return m
	}
	m, err := svgpath.ParseTransform(el.SelectAttrValue("transform", ""))
	if err != nil { // already reported by index
		return svgpath.Identity
	}
	return m
}

// length returns the numeric value of the attribute, or 0
func (d *Document) length(el *etree.Element, attr string) float64 {
	v := el.SelectAttrValue(attr, "")
	if v == "" {
		return 0
	}
	f, err := svgpath.ParseLength(v)
	if err != nil {
		return 0
	}
	return f
}

// shapePath returns the outline of a basic shape element,
// in its local coordinates.
func (d *Document) shapePath(el *etree.Element) (svgpath.Path, bool) {
	switch el.Tag {
	case "rect":
		return svgpath.RectPath(d.length(el, "x"), d.length(el, "y"),
			d.length(el, "width"), d.length(el, "height"),
			d.length(el, "rx"), d.length(el, "ry")), true
	case "image":
		return svgpath.RectPath(d.length(el, "x"), d.length(el, "y"),
			d.length(el, "width"), d.length(el, "height"), 0, 0), true
	case "circle":
		r := d.length(el, "r")
		return svgpath.EllipsePath(d.length(el, "cx"), d.length(el, "cy"), r, r), true
	case "ellipse":
		return svgpath.EllipsePath(d.length(el, "cx"), d.length(el, "cy"),
			d.length(el, "rx"), d.length(el, "ry")), true
	case "line":
		return svgpath.PolylinePath([]float64{
			d.length(el, "x1"), d.length(el, "y1"),
			d.length(el, "x2"), d.length(el, "y2"),
		}, false), true
	case "polyline", "polygon":
		points, err := svgpath.ParseNumbers(el.SelectAttrValue("points", ""))
		if err != nil {
			return nil, false
		}
		return svgpath.PolylinePath(points, el.Tag == "polygon"), true
	case "path":
		p, err := svgpath.CompilePath(el.SelectAttrValue("d", ""))
		if err != nil {
			return nil, false
		}
		return p, true
	}
	return nil, false
}

// useTarget resolves the element referenced by a <use>, and
// the transform applied to it
func (d *Document) useTarget(el *etree.Element) (*etree.Element, svgpath.Matrix2D, bool) {
	href := el.SelectAttrValue("href", "")
	if len(href) < 2 || href[0] != '#' {
		return nil, svgpath.Matrix2D{}, false
	}
	target, ok := d.ids[href[1:]]
	if !ok {
		return nil, svgpath.Matrix2D{}, false
	}
	m := svgpath.Identity.Translate(d.length(el, "x"), d.length(el, "y")).Mult(d.transformOf(target))
	return target, m, true
}

// bbox computes the extent of el in its local coordinates.
// `visiting` protects against cyclic <use> references.
func (d *Document) bbox(el *etree.Element, visiting map[*etree.Element]bool) (ext svgpath.Extent) {
	if !d.isSVG(el) || visiting[el] {
		return ext
	}
	visiting[el] = true
	defer delete(visiting, el)

	switch el.Tag {
	case "svg", "g", "a", "switch":
		for _, child := range el.ChildElements() {
			cb := d.bbox(child, visiting)
			if cb.IsEmpty() {
				continue
			}
			ext.AddBounds(cb.Bounds().Transform(d.transformOf(child)))
		}
	case "use":
		target, m, ok := d.useTarget(el)
		if !ok {
			return ext
		}
		if tb := d.bbox(target, visiting); !tb.IsEmpty() {
			ext.AddBounds(tb.Bounds().Transform(m))
		}
	default:
		if p, ok := d.shapePath(el); ok {
			if b, ok := p.Bounds(); ok {
				ext.AddBounds(b)
			}
		}
	}
	return ext
}

// Outline returns the shapes of the element, and of its
// descendants, as one path in the local coordinates of the element.
// Strokes and unsupported elements are ignored.
func (e *Element) Outline() svgpath.Path {
	var out svgpath.Path
	e.doc.outline(e.el, svgpath.Identity, make(map[*etree.Element]bool), &out)
	return out
}

func (d *Document) outline(el *etree.Element, m svgpath.Matrix2D, visiting map[*etree.Element]bool, out *svgpath.Path) {
	if !d.isSVG(el) || visiting[el] {
		return
	}
	visiting[el] = true
	defer delete(visiting, el)

	switch el.Tag {
	case "svg", "g", "a", "switch":
		for _, child := range el.ChildElements() {
			d.outline(child, m.Mult(d.transformOf(child)), visiting, out)
		}
	case "use":
		if target, tm, ok := d.useTarget(el); ok {
			d.outline(target, m.Mult(tm), visiting, out)
		}
	default:
		if p, ok := d.shapePath(el); ok {
			*out = append(*out, p.Transform(m)...)
		}
	}
}
