package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errNoMoveTo       = errors.New("path data does not start with a moveto")
)

// pathCursor is used to compile the `d` attribute of a path
type pathCursor struct {
	path                   Path
	placeX, placeY         float64 // current point
	cntlPtX, cntlPtY       float64 // last control point, for smooth curves
	pathStartX, pathStartY float64
	points                 []float64
	lastKey                uint8
	inPath                 bool
}

// CompilePath translates the svg path data `d` into a Path.
// All the commands of the SVG 1.1 grammar are supported, in their
// absolute and relative forms.
func CompilePath(d string) (Path, error) {
	var c pathCursor
	if err := c.compilePath(d); err != nil {
		return nil, fmt.Errorf("invalid path data %q: %w", d, err)
	}
	return c.path, nil
}

func (c *pathCursor) compilePath(svgPath string) error {
	lastIndex := -1
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex == -1 {
				if strings.TrimSpace(svgPath[:i]) != "" {
					return errNoMoveTo
				}
			} else if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
				return err
			}
			lastIndex = i
		}
	}
	if lastIndex == -1 {
		if strings.TrimSpace(svgPath) != "" {
			return errNoMoveTo
		}
		return nil
	}
	return c.addSeg(svgPath[lastIndex:])
}

func (c *pathCursor) getPoints(dataPoints string) error {
	var err error
	c.points, err = appendNumbers(c.points[:0], dataPoints)
	return err
}

// reflect returns the reflection of the last control point
// around the current point, if the previous command was one of `keys`.
func (c *pathCursor) reflect(keys string) (float64, float64) {
	if strings.IndexByte(keys, c.lastKey) >= 0 {
		return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(toFixedP(x, y))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) addSeg(segString string) error {
	key := segString[0]
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	rel := unicode.IsLower(rune(key))
	var ox, oy float64 // origin of relative coordinates
	if rel {
		ox, oy = c.placeX, c.placeY
	}
	if !c.inPath && key != 'M' && key != 'm' {
		return errNoMoveTo
	}

	switch unicode.ToLower(rune(key)) {
	case 'z':
		if l != 0 {
			return errParamMismatch
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.pathStartX, c.pathStartY
	case 'm':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		c.placeX, c.placeY = c.points[0]+ox, c.points[1]+oy
		c.pathStartX, c.pathStartY = c.placeX, c.placeY
		c.path.Start(toFixedP(c.placeX, c.placeY))
		c.inPath = true
		// extra pairs are implicit lineto commands
		for i := 2; i < l; i += 2 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			c.lineTo(c.points[i]+ox, c.points[i+1]+oy)
		}
	case 'l':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			c.lineTo(c.points[i]+ox, c.points[i+1]+oy)
		}
	case 'h':
		if l == 0 {
			return errParamMismatch
		}
		for _, x := range c.points {
			if rel {
				ox = c.placeX
			}
			c.lineTo(x+ox, c.placeY)
		}
	case 'v':
		if l == 0 {
			return errParamMismatch
		}
		for _, y := range c.points {
			if rel {
				oy = c.placeY
			}
			c.lineTo(c.placeX, y+oy)
		}
	case 'c':
		if l == 0 || l%6 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 6 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			p := c.points[i : i+6]
			c.path.CubeBezier(toFixedP(p[0]+ox, p[1]+oy), toFixedP(p[2]+ox, p[3]+oy), toFixedP(p[4]+ox, p[5]+oy))
			c.cntlPtX, c.cntlPtY = p[2]+ox, p[3]+oy
			c.placeX, c.placeY = p[4]+ox, p[5]+oy
			c.lastKey = 'C'
		}
	case 's':
		if l == 0 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 4 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			p := c.points[i : i+4]
			x1, y1 := c.reflect("CcSs")
			c.path.CubeBezier(toFixedP(x1, y1), toFixedP(p[0]+ox, p[1]+oy), toFixedP(p[2]+ox, p[3]+oy))
			c.cntlPtX, c.cntlPtY = p[0]+ox, p[1]+oy
			c.placeX, c.placeY = p[2]+ox, p[3]+oy
			c.lastKey = 'S'
		}
	case 'q':
		if l == 0 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 4 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			p := c.points[i : i+4]
			c.path.QuadBezier(toFixedP(p[0]+ox, p[1]+oy), toFixedP(p[2]+ox, p[3]+oy))
			c.cntlPtX, c.cntlPtY = p[0]+ox, p[1]+oy
			c.placeX, c.placeY = p[2]+ox, p[3]+oy
			c.lastKey = 'Q'
		}
	case 't':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			x1, y1 := c.reflect("QqTt")
			c.path.QuadBezier(toFixedP(x1, y1), toFixedP(c.points[i]+ox, c.points[i+1]+oy))
			c.cntlPtX, c.cntlPtY = x1, y1
			c.placeX, c.placeY = c.points[i]+ox, c.points[i+1]+oy
			c.lastKey = 'T'
		}
	case 'a':
		if l == 0 || l%7 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 7 {
			if rel {
				ox, oy = c.placeX, c.placeY
			}
			p := append([]float64(nil), c.points[i:i+7]...)
			p[5] += ox
			p[6] += oy
			c.arcTo(p)
		}
	default:
		return fmt.Errorf("%w: %c", errCommandUnknown, key)
	}
	switch key {
	case 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't':
		c.lastKey = key
	default:
		c.lastKey = key
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
	return nil
}

// arcTo adds an elliptical arc, whose end point in `p` is already absolute:
// rx, ry, x-axis-rotation, large-arc-flag, sweep-flag, x, y
func (c *pathCursor) arcTo(p []float64) {
	p[0], p[1] = math.Abs(p[0]), math.Abs(p[1])
	if p[5] == c.placeX && p[6] == c.placeY {
		return // no arc to draw
	}
	if p[0] == 0 || p[1] == 0 {
		c.lineTo(p[5], p[6])
		return
	}
	arc := ellipticArc{
		rx: p[0], ry: p[1], phi: p[2] * math.Pi / 180,
		large: p[3] != 0, sweep: p[4] != 0,
		x0: c.placeX, y0: c.placeY, x1: p[5], y1: p[6],
	}
	arc.addTo(&c.path)
	c.placeX, c.placeY = p[5], p[6]
}

func isSeparator(b byte) bool {
	return b == ',' || b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// appendNumbers reads the numbers of a SVG list, such as "10-5.5.5,1e3",
// and appends them to dst.
func appendNumbers(dst []float64, s string) ([]float64, error) {
	i := 0
	for i < len(s) {
		if isSeparator(s[i]) {
			i++
			continue
		}
		start := i
		if s[i] == '+' || s[i] == '-' {
			i++
		}
		seenDot, seenDigit := false, false
		for ; i < len(s); i++ {
			ch := s[i]
			if '0' <= ch && ch <= '9' {
				seenDigit = true
			} else if ch == '.' && !seenDot {
				seenDot = true
			} else {
				break
			}
		}
		if seenDigit && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			if j < len(s) && '0' <= s[j] && s[j] <= '9' {
				for j < len(s) && '0' <= s[j] && s[j] <= '9' {
					j++
				}
				i = j
			}
		}
		if !seenDigit {
			return dst, fmt.Errorf("%w: invalid number in %q", errParamMismatch, s)
		}
		f, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return dst, err
		}
		dst = append(dst, f)
	}
	return dst, nil
}

// ParseNumbers reads a list of numbers separated by
// commas and/or white spaces, as found in `points` or `viewBox` attributes.
func ParseNumbers(s string) ([]float64, error) {
	return appendNumbers(nil, s)
}
