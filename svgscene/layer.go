package svgscene

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgpath"
)

var _ svgdisplay.Scene = (*Document)(nil) // assert interface conformance

// BBox returns the bounding box of the drawing, in the
// user space of the root element.
func (d *Document) BBox() svgpath.Bounds {
	return d.Root().BBox()
}

// SetSize sets the width and height attributes of the root element.
func (d *Document) SetSize(width, height float64) {
	d.root.CreateAttr("width", svgpath.FormatNumber(width))
	d.root.CreateAttr("height", svgpath.FormatNumber(height))
}

// FindElement is the same as ElementByID, returning the interface
// used by the display.
func (d *Document) FindElement(id string) (svgdisplay.Element, error) {
	el, err := d.ElementByID(id)
	if err != nil {
		return nil, err
	}
	return el, nil
}

// Layer holds the nodes created for a layer: the group
// clipped by the clip path, and the rectangle of the clip path.
// It implements svgdisplay.LayerHandle.
type Layer struct {
	group    *etree.Element // wrapping, clipped group
	clipRect *etree.Element
	content  *etree.Element // the layer group, transformed
	authored svgpath.Matrix2D
}

// WrapLayer creates a <clipPath id="clipPathID"> with a <rect> child,
// appended to the root, and a <g> clipped by it, which replaces the
// layer group `id` in its parent. The layer group is moved inside the new group.
// An error is returned if `clipPathID` is already used in the document.
func (d *Document) WrapLayer(id, clipPathID string) (svgdisplay.LayerHandle, error) {
	content, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", id, ErrNotFound)
	}
	if _, ok := d.authored[content]; ok {
		return nil, fmt.Errorf("layer %q: %w", id, errAlreadyWrapped)
	}
	parent := content.Parent()
	if parent == nil || content == d.root {
		return nil, fmt.Errorf("layer %q: the root element can't be used as layer", id)
	}
	if _, taken := d.ids[clipPathID]; taken {
		return nil, fmt.Errorf("layer %q: id %q is already used in the document", id, clipPathID)
	}
	authored := d.transformOf(content)
	d.authored[content] = authored

	clipPath := d.root.CreateElement(d.tag("clipPath"))
	clipPath.CreateAttr("id", clipPathID)
	rect := clipPath.CreateElement(d.tag("rect"))
	d.ids[clipPathID] = clipPath

	group := etree.NewElement(d.tag("g"))
	group.CreateAttr("clip-path", "url(#"+clipPathID+")")
	// same position: the paint order is preserved
	parent.InsertChildAt(content.Index(), group)
	group.AddChild(content)

	return &Layer{group: group, clipRect: rect, content: content, authored: authored}, nil
}

// SetClipRect updates the clip path rectangle.
func (l *Layer) SetClipRect(x, y, width, height float64) {
	l.clipRect.CreateAttr("x", svgpath.FormatNumber(x))
	l.clipRect.CreateAttr("y", svgpath.FormatNumber(y))
	l.clipRect.CreateAttr("width", svgpath.FormatNumber(width))
	l.clipRect.CreateAttr("height", svgpath.FormatNumber(height))
}

// SetTransform updates the transform of the layer group.
// The authored transform of the group, if any, is applied first,
// so that the display maps the user space of the root element.
func (l *Layer) SetTransform(transform string) {
	if l.authored != svgpath.Identity {
		transform += " " + l.authored.String()
	}
	l.content.CreateAttr("transform", transform)
}

// Group returns the clipped group enclosing the layer.
func (l *Layer) Group() *etree.Element { return l.group }

// TopLevelGroups returns the ids of the <g> children of the
// root element, in document order. Groups without id are skipped.
func (d *Document) TopLevelGroups() []string {
	var out []string
	for _, child := range d.root.ChildElements() {
		if !d.isSVG(child) || child.Tag != "g" {
			continue
		}
		if id := child.SelectAttrValue("id", ""); id != "" {
			out = append(out, id)
		}
	}
	return out
}
