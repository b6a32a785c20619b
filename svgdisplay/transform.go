package svgdisplay

import (
	"math"
	"strings"

	"github.com/benoitkugler/svgshow/svgpath"
)

// clipRect is the visible region of a layer, in viewport pixels
func clipRect(g Geometry, f ViewportFrame, width, height float64) svgpath.Bounds {
	if g.Clip {
		return svgpath.Bounds{X: f.X, Y: f.Y, W: f.Width, H: f.Height}
	}
	return svgpath.Bounds{W: width, H: height}
}

// translation moves the frame center to the frame position on screen,
// in document units (the scale is applied afterwards)
func translation(g Geometry, f ViewportFrame) (tx, ty float64) {
	return -g.CX + g.Width/2 + f.X/f.Scale, -g.CY + g.Height/2 + f.Y/f.Scale
}

// LayerMatrix returns the transform mapping the document
// to the viewport, for a layer in state `g` shown in `f`.
func LayerMatrix(g Geometry, f ViewportFrame) svgpath.Matrix2D {
	tx, ty := translation(g, f)
	return svgpath.Identity.Scale(f.Scale, f.Scale).
		Translate(tx, ty).
		Translate(g.CX, g.CY).
		Rotate(-g.Rotate*math.Pi/180).
		Translate(-g.CX, -g.CY)
}

// LayerTransform returns the value of the transform attribute
// written on a layer group: it applies the same transform as LayerMatrix,
// as a scale, a translation then a rotation around the frame center.
func LayerTransform(g Geometry, f ViewportFrame) string {
	tx, ty := translation(g, f)
	var sb strings.Builder
	sb.WriteString("scale(")
	sb.WriteString(svgpath.FormatNumber(f.Scale))
	sb.WriteString(")translate(")
	sb.WriteString(svgpath.FormatNumber(tx))
	sb.WriteByte(',')
	sb.WriteString(svgpath.FormatNumber(ty))
	sb.WriteString(")rotate(")
	sb.WriteString(svgpath.FormatNumber(0 - g.Rotate))
	sb.WriteByte(',')
	sb.WriteString(svgpath.FormatNumber(g.CX))
	sb.WriteByte(',')
	sb.WriteString(svgpath.FormatNumber(g.CY))
	sb.WriteByte(')')
	return sb.String()
}
