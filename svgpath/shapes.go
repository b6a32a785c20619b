package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file converts the basic shapes and the
// elliptical arcs to path segments.

// maxArcSpan is the widest parametric angle approximated
// by one cubic segment.
const maxArcSpan = math.Pi / 8

// kappa is the control point distance of a cubic bezier
// approximating a quarter of a unit circle
const kappa = 0.5522847498

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// addRoundRect adds the rectangle (x0, y0)-(x1, y1), whose corners
// are rounded with radii (rx, ry). A missing radius defaults to the other
// one, and radii are clamped to half the sides.
func (p *Path) addRoundRect(x0, y0, x1, y1, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		p.Start(toFixedP(x0, y0))
		p.Line(toFixedP(x1, y0))
		p.Line(toFixedP(x1, y1))
		p.Line(toFixedP(x0, y1))
		p.Stop(true)
		return
	}
	if rx <= 0 {
		rx = ry
	} else if ry <= 0 {
		ry = rx
	}
	rx = math.Min(rx, (x1-x0)/2)
	ry = math.Min(ry, (y1-y0)/2)

	p.Start(toFixedP(x0+rx, y0))
	p.Line(toFixedP(x1-rx, y0))
	p.quarterEllipse(x1-rx, y0+ry, rx, ry, -math.Pi/2)
	p.Line(toFixedP(x1, y1-ry))
	p.quarterEllipse(x1-rx, y1-ry, rx, ry, 0)
	p.Line(toFixedP(x0+rx, y1))
	p.quarterEllipse(x0+rx, y1-ry, rx, ry, math.Pi/2)
	p.Line(toFixedP(x0, y0+ry))
	p.quarterEllipse(x0+rx, y0+ry, rx, ry, math.Pi)
	p.Stop(true)
}

// quarterEllipse adds the cubic approximation of the quarter of ellipse
// centered at (cx, cy), starting at parameter angle `from`,
// going clockwise in screen coordinates.
func (p *Path) quarterEllipse(cx, cy, rx, ry, from float64) {
	s0, c0 := math.Sincos(from)
	s1, c1 := math.Sincos(from + math.Pi/2)
	x0, y0 := cx+rx*c0, cy+ry*s0
	x1, y1 := cx+rx*c1, cy+ry*s1
	p.CubeBezier(
		toFixedP(x0-kappa*rx*s0, y0+kappa*ry*c0),
		toFixedP(x1+kappa*rx*s1, y1-kappa*ry*c1),
		toFixedP(x1, y1))
}

// addEllipse adds a closed ellipse centered at (cx, cy)
func (p *Path) addEllipse(cx, cy, rx, ry float64) {
	p.Start(toFixedP(cx+rx, cy))
	for i := 0; i < 4; i++ {
		p.quarterEllipse(cx, cy, rx, ry, float64(i)*math.Pi/2)
	}
	p.Stop(true)
}

// ellipticArc is an arc in endpoint parametrization,
// as found in the A path command.
type ellipticArc struct {
	rx, ry       float64 // positive
	phi          float64 // x axis rotation, in radians
	large, sweep bool
	x0, y0       float64 // start
	x1, y1       float64 // end
}

// center locates the center of the ellipse. When no ellipse with
// the given radii joins the end points, the radii are enlarged
// (keeping their ratio) to the smallest possible ellipse.
// The problem is reduced to a circle of radius ry going through
// the origin, by moving the start point to the origin, aligning the
// ellipse axis with the x axis and scaling x by ry / rx.
func (a *ellipticArc) center() (cx, cy float64) {
	sin, cos := math.Sincos(a.phi)
	dx, dy := a.x1-a.x0, a.y1-a.y0
	dx, dy = dx*cos+dy*sin, -dx*sin+dy*cos
	dx *= a.ry / a.rx

	mx, my := dx/2, dy/2
	halfChordSq := mx*mx + my*my
	var h float64
	if a.ry*a.ry < halfChordSq {
		r := math.Sqrt(halfChordSq)
		if a.rx == a.ry {
			a.rx = r
		} else {
			a.rx = a.rx * r / a.ry
		}
		a.ry = r
	} else {
		h = math.Sqrt(a.ry*a.ry-halfChordSq) / math.Sqrt(halfChordSq)
	}
	// h == 0 gives the same center for both cases
	if a.sweep != a.large {
		cx, cy = mx+my*h, my-mx*h
	} else {
		cx, cy = mx-my*h, my+mx*h
	}

	cx *= a.rx / a.ry
	return cx*cos - cy*sin + a.x0, cx*sin + cy*cos + a.y0
}

// pointAt returns the point of parameter eta, with (sin, cos) of phi
func (a *ellipticArc) pointAt(cx, cy, sin, cos, eta float64) (x, y float64) {
	se, ce := math.Sincos(eta)
	return cx + a.rx*ce*cos - a.ry*se*sin, cy + a.rx*ce*sin + a.ry*se*cos
}

// tangentAt returns the derivative of pointAt
func (a *ellipticArc) tangentAt(sin, cos, eta float64) (dx, dy float64) {
	se, ce := math.Sincos(eta)
	return -a.rx*se*cos - a.ry*ce*sin, -a.rx*se*sin + a.ry*ce*cos
}

// addTo approximates the arc with cubic beziers, following
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003.
// The current point of `p` must be the start of the arc.
func (a *ellipticArc) addTo(p *Path) {
	cx, cy := a.center()
	sin, cos := math.Sincos(a.phi)

	theta0 := math.Atan2(a.y0-cy, a.x0-cx) - a.phi
	theta1 := math.Atan2(a.y1-cy, a.x1-cx) - a.phi
	big := math.Abs(theta1-theta0) > math.Pi

	eta0 := math.Atan2(math.Sin(theta0)/a.ry, math.Cos(theta0)/a.rx)
	eta1 := math.Atan2(math.Sin(theta1)/a.ry, math.Cos(theta1)/a.rx)
	span := eta1 - eta0
	if big != a.large {
		if span < 0 {
			span += 2 * math.Pi
		} else {
			span -= 2 * math.Pi
		}
	}
	// needed when the center is the middle of the chord
	if span < 0 && a.sweep {
		span += 2 * math.Pi
	} else if span >= 0 && !a.sweep {
		span -= 2 * math.Pi
	}

	n := int(math.Abs(span)/maxArcSpan) + 1
	step := span / float64(n)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	x, y := a.x0, a.y0
	dx, dy := a.tangentAt(sin, cos, eta0)
	for i := 1; i <= n; i++ {
		eta := eta0 + step*float64(i)
		nx, ny := a.x1, a.y1 // exact end point
		if i < n {
			nx, ny = a.pointAt(cx, cy, sin, cos, eta)
		}
		ndx, ndy := a.tangentAt(sin, cos, eta)
		p.CubeBezier(toFixedP(x+alpha*dx, y+alpha*dy),
			toFixedP(nx-alpha*ndx, ny-alpha*ndy), toFixedP(nx, ny))
		x, y, dx, dy = nx, ny, ndx, ndy
	}
}

// RectPath returns the outline of a (possibly rounded) rectangle.
func RectPath(x, y, w, h, rx, ry float64) Path {
	var p Path
	if w <= 0 || h <= 0 {
		return p
	}
	p.addRoundRect(x, y, x+w, y+h, rx, ry)
	return p
}

// EllipsePath returns the outline of an ellipse, or
// nil if one of the radius is not positive.
func EllipsePath(cx, cy, rx, ry float64) Path {
	var p Path
	if rx <= 0 || ry <= 0 {
		return p
	}
	p.addEllipse(cx, cy, rx, ry)
	return p
}

// PolylinePath joins the points given as x, y pairs.
// A trailing odd coordinate is ignored.
func PolylinePath(points []float64, closed bool) Path {
	var p Path
	if len(points) < 2 {
		return p
	}
	p.Start(toFixedP(points[0], points[1]))
	for i := 2; i+1 < len(points); i += 2 {
		p.Line(toFixedP(points[i], points[i+1]))
	}
	p.Stop(closed)
	return p
}
