// Implements an abstract representation of
// svg paths, together with the affine transforms
// and bounding boxes needed to place them on screen.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	writePoints := func(cmd byte, points ...fixed.Point26_6) {
		if sb.Len() != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(cmd)
		for i, pt := range points {
			if i != 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%4.3f,%4.3f", float32(pt.X)/64, float32(pt.Y)/64)
		}
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			writePoints('M', fixed.Point26_6(op))
		case LineTo:
			writePoints('L', fixed.Point26_6(op))
		case QuadTo:
			writePoints('Q', op[:]...)
		case CubicTo:
			writePoints('C', op[:]...)
		case Close:
			writePoints('Z')
		}
	}
	return sb.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path with every point mapped by m.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, 0, len(p))
	p.AddTo(&matrixAdder{M: m, path: &out})
	return out
}

// Drawer receives the segments of a path, like
// the fillers and strokers of rasterx.
type Drawer interface {
	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)
}

// AddTo sends the operations of the path to `d`.
func (p Path) AddTo(d Drawer) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			d.Stop(false) // implicit close if currently in path.
			d.Start(fixed.Point26_6(op))
		case LineTo:
			d.Line(fixed.Point26_6(op))
		case QuadTo:
			d.QuadBezier(op[0], op[1])
		case CubicTo:
			d.CubeBezier(op[0], op[1], op[2])
		case Close:
			d.Stop(true)
		}
	}
	d.Stop(false)
}
