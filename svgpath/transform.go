package svgpath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, fmt.Errorf("%w: %s", errCommandUnknown, k)
	}
	return m1, nil
}

// ParseTransform reads the value of a `transform` attribute,
// such as "translate(10,20) rotate(45)". The transforms are composed from
// left to right, so that the last one is applied first to the points.
// An empty string returns the Identity.
func ParseTransform(v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := Identity
	var points []float64
	for _, t := range ts {
		t = strings.Trim(t, " \t\n\r,")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return Identity, fmt.Errorf("invalid transform %q: %w", v, errParamMismatch) // badly formed transformation
		}
		var err error
		points, err = appendNumbers(points[:0], d[1])
		if err != nil {
			return Identity, fmt.Errorf("invalid transform %q: %w", v, err)
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return Identity, fmt.Errorf("invalid transform %q: %w", v, err)
		}
	}
	return m1, nil
}

// ParseLength reads a length attribute. Only user units are supported,
// an optional "px" suffix is accepted.
func ParseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	return strconv.ParseFloat(v, 64)
}

// FormatNumber writes f with the shortest representation
// accepted in SVG attributes.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns the matrix as an SVG transform.
func (a Matrix2D) String() string {
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		FormatNumber(a.A), FormatNumber(a.B), FormatNumber(a.C),
		FormatNumber(a.D), FormatNumber(a.E), FormatNumber(a.F))
}
