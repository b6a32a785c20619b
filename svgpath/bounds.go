package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Center returns the middle point of the box.
func (b Bounds) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Transform returns the axis aligned box enclosing
// the image of b by m.
func (b Bounds) Transform(m Matrix2D) Bounds {
	var e Extent
	e.Add(m.Transform(b.X, b.Y))
	e.Add(m.Transform(b.X+b.W, b.Y))
	e.Add(m.Transform(b.X+b.W, b.Y+b.H))
	e.Add(m.Transform(b.X, b.Y+b.H))
	return e.Bounds()
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	var e Extent
	e.AddBounds(b)
	e.AddBounds(o)
	return e.Bounds()
}

// Extent accumulates points and boxes. The zero value is empty.
type Extent struct {
	set                    bool
	minX, minY, maxX, maxY float64
}

// Add extends the extent to the point (x, y)
func (e *Extent) Add(x, y float64) {
	if !e.set {
		e.minX, e.maxX, e.minY, e.maxY = x, x, y, y
		e.set = true
		return
	}
	e.minX = math.Min(e.minX, x)
	e.minY = math.Min(e.minY, y)
	e.maxX = math.Max(e.maxX, x)
	e.maxY = math.Max(e.maxY, y)
}

// AddBounds extends the extent to the box b
func (e *Extent) AddBounds(b Bounds) {
	e.Add(b.X, b.Y)
	e.Add(b.X+b.W, b.Y+b.H)
}

// IsEmpty is true if nothing was added
func (e Extent) IsEmpty() bool { return !e.set }

// Bounds returns the accumulated box, or a zero box when empty.
func (e Extent) Bounds() Bounds {
	if !e.set {
		return Bounds{}
	}
	return Bounds{X: e.minX, Y: e.minY, W: e.maxX - e.minX, H: e.maxY - e.minY}
}

// Bounds computes the exact extent of the path, using
// the extrema of its curves.
// The boolean is false for an empty path.
func (p Path) Bounds() (Bounds, bool) {
	var (
		e           Extent
		first, prev fixed.Point26_6
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			prev = fixed.Point26_6(op)
			first = prev
			e.Add(fixedTof(prev))
		case LineTo:
			e.addSegment(prev, fixed.Point26_6(op))
			prev = fixed.Point26_6(op)
		case QuadTo:
			e.addSegment(prev, op[0], op[1])
			prev = op[1]
		case CubicTo:
			e.addSegment(prev, op[0], op[1], op[2])
			prev = op[2]
		case Close:
			prev = first
		}
	}
	return e.Bounds(), !e.IsEmpty()
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// addSegment adds the extent of the bezier curve (of degree 1 to 3)
// with the given control points: its end points and the points
// where the derivative of one coordinate vanishes.
func (e *Extent) addSegment(points ...fixed.Point26_6) {
	var xs, ys [4]float64
	n := len(points)
	for i, pt := range points {
		xs[i], ys[i] = fixedTof(pt)
	}
	e.Add(xs[0], ys[0])
	e.Add(xs[n-1], ys[n-1])
	for _, t := range append(extremaParams(xs[:n]), extremaParams(ys[:n])...) {
		if 0 < t && t < 1 {
			e.Add(bezierAt(xs[:n], t), bezierAt(ys[:n], t))
		}
	}
}

// extremaParams returns the roots of the derivative of the
// one dimensional bezier curve with control values c
func extremaParams(c []float64) []float64 {
	switch len(c) {
	case 3:
		// B'/2 = (c0 - 2c1 + c2)t + (c1 - c0)
		return linearRoots(c[0]-2*c[1]+c[2], c[1]-c[0])
	case 4:
		// B'/3 = (-c0 + 3c1 - 3c2 + c3)t^2 + 2(c0 - 2c1 + c2)t + (c1 - c0)
		return quadraticRoots(-c[0]+3*c[1]-3*c[2]+c[3], 2*(c[0]-2*c[1]+c[2]), c[1]-c[0])
	}
	return nil
}

// bezierAt evaluates the curve at t, with the De Casteljau algorithm
func bezierAt(c []float64, t float64) float64 {
	var tmp [4]float64
	n := copy(tmp[:], c)
	for ; n > 1; n-- {
		for i := 0; i < n-1; i++ {
			tmp[i] += (tmp[i+1] - tmp[i]) * t
		}
	}
	return tmp[0]
}

// roots of at + b
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

// roots of at^2 + bt + c
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}
