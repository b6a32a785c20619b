package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

const fixedPrecision = 1. / 32

func assertPoint(t *testing.T, m Matrix2D, x, y, expX, expY float64) {
	t.Helper()
	gx, gy := m.Transform(x, y)
	assert.InDelta(t, expX, gx, 1e-9)
	assert.InDelta(t, expY, gy, 1e-9)
}

func assertBounds(t *testing.T, exp, got Bounds, delta float64) {
	t.Helper()
	assert.InDelta(t, exp.X, got.X, delta, "X")
	assert.InDelta(t, exp.Y, got.Y, delta, "Y")
	assert.InDelta(t, exp.W, got.W, delta, "W")
	assert.InDelta(t, exp.H, got.H, delta, "H")
}

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("translate(10,20) scale(2)")
	require.NoError(t, err)
	assertPoint(t, m, 1, 1, 12, 22)

	m, err = ParseTransform("rotate(90, 10, 10)")
	require.NoError(t, err)
	assertPoint(t, m, 20, 10, 10, 20)

	m, err = ParseTransform("scale(3)")
	require.NoError(t, err)
	assertPoint(t, m, 1, 2, 3, 6)

	m, err = ParseTransform("matrix(1 0 0 1 5 -5)")
	require.NoError(t, err)
	assertPoint(t, m, 0, 0, 5, -5)

	m, err = ParseTransform("")
	require.NoError(t, err)
	assert.Equal(t, Identity, m)

	for _, bad := range []string{"foo(1)", "translate(1,2,3)", "rotate(1,2)", "scale", "translate(a)"} {
		_, err = ParseTransform(bad)
		assert.Error(t, err, bad)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Identity.Translate(4, -3).Rotate(0.7).Scale(2, 5)
	p := m.Mult(m.Invert())
	assertPoint(t, p, 13, 7, 13, 7)
	assert.InDelta(t, 1, p.A, 1e-9)
	assert.InDelta(t, 0, p.B, 1e-9)
}

func TestMatrixString(t *testing.T) {
	assert.Equal(t, "matrix(2,0,0,2,10.5,-3)", Identity.Translate(10.5, -3).Scale(2, 2).String())
}

func TestParseNumbers(t *testing.T) {
	nums, err := ParseNumbers("10-5.5.5,1e2 \n -.25")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, -5.5, 0.5, 100, -0.25}, nums)

	_, err = ParseNumbers("1,-")
	assert.Error(t, err)
}

func TestCompilePathLines(t *testing.T) {
	p, err := CompilePath("M10 10 L 20 30 h5 v-10 z")
	require.NoError(t, err)
	b, ok := p.Bounds()
	require.True(t, ok)
	assertBounds(t, Bounds{10, 10, 15, 20}, b, fixedPrecision)

	p, err = CompilePath("m10,10 l10,0 0,10")
	require.NoError(t, err)
	b, _ = p.Bounds()
	assertBounds(t, Bounds{10, 10, 10, 10}, b, fixedPrecision)
}

func TestCompilePathCurves(t *testing.T) {
	p, err := CompilePath("M0,0 C0,100 100,100 100,0")
	require.NoError(t, err)
	b, _ := p.Bounds()
	assertBounds(t, Bounds{0, 0, 100, 75}, b, fixedPrecision)

	// the smooth curve mirrors the first one
	p, err = CompilePath("M0,0 C0,100 100,100 100,0 S200,-100 200,0")
	require.NoError(t, err)
	b, _ = p.Bounds()
	assertBounds(t, Bounds{0, -75, 200, 150}, b, fixedPrecision)

	p, err = CompilePath("M0,0 Q50,100 100,0 T200,0")
	require.NoError(t, err)
	b, _ = p.Bounds()
	assertBounds(t, Bounds{0, -50, 200, 100}, b, fixedPrecision)
}

func TestCompilePathArc(t *testing.T) {
	p, err := CompilePath("M0,50 A50,50 0 0 1 100,50")
	require.NoError(t, err)
	b, _ := p.Bounds()
	assert.InDelta(t, 100, b.W, 0.5)
	assert.InDelta(t, 50, b.H, 0.5)

	// null radius degenerates to a line
	p, err = CompilePath("M0,0 a0,0 0 0 1 10,10")
	require.NoError(t, err)
	b, _ = p.Bounds()
	assertBounds(t, Bounds{0, 0, 10, 10}, b, fixedPrecision)
}

func TestCompilePathErrors(t *testing.T) {
	for _, bad := range []string{"M 10", "L10 10", "M0,0 X10", "12 M0,0", "M0,0 C1,2,3"} {
		_, err := CompilePath(bad)
		assert.Error(t, err, bad)
	}
	p, err := CompilePath("  ")
	require.NoError(t, err)
	_, ok := p.Bounds()
	assert.False(t, ok)
}

func TestShapes(t *testing.T) {
	b, _ := RectPath(10, 20, 30, 40, 5, 0).Bounds()
	assertBounds(t, Bounds{10, 20, 30, 40}, b, fixedPrecision)

	b, _ = EllipsePath(50, 50, 20, 10).Bounds()
	assertBounds(t, Bounds{30, 40, 40, 20}, b, 0.1)

	b, _ = PolylinePath([]float64{0, 0, 10, 5, -3, 8}, true).Bounds()
	assertBounds(t, Bounds{-3, 0, 13, 8}, b, fixedPrecision)

	assert.Empty(t, EllipsePath(0, 0, 0, 3))
	assert.Empty(t, RectPath(0, 0, 0, 3, 0, 0))
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{0, 0, 20, 10}.Transform(Identity.Rotate(math.Pi / 2))
	assertBounds(t, Bounds{-10, 0, 10, 20}, b, 1e-9)

	u := Bounds{0, 0, 1, 1}.Union(Bounds{5, -2, 1, 1})
	assertBounds(t, Bounds{0, -2, 6, 3}, u, 1e-9)

	cx, cy := u.Center()
	assert.Equal(t, 3., cx)
	assert.Equal(t, -0.5, cy)
}

type recorder struct{ ops []string }

func (r *recorder) Start(a fixed.Point26_6)         { r.ops = append(r.ops, "M") }
func (r *recorder) Line(b fixed.Point26_6)          { r.ops = append(r.ops, "L") }
func (r *recorder) QuadBezier(b, c fixed.Point26_6) { r.ops = append(r.ops, "Q") }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.ops = append(r.ops, "C")
}

func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.ops = append(r.ops, "Z")
	}
}

func TestPathReplay(t *testing.T) {
	p, err := CompilePath("M0,0 L10,0 Q10,10 0,10 z M20,20 C30,20 30,30 20,30")
	require.NoError(t, err)
	assert.Equal(t, "M0.000,0.000 L10.000,0.000 Q10.000,10.000,0.000,10.000 Z "+
		"M20.000,20.000 C30.000,20.000,30.000,30.000,20.000,30.000", p.ToSVGPath())

	var r recorder
	p.AddTo(&r)
	assert.Equal(t, []string{"M", "L", "Q", "Z", "M", "C"}, r.ops)

	moved := p.Transform(Identity.Translate(5, -5))
	require.Len(t, moved, len(p))
	b1, _ := p.Bounds()
	b2, _ := moved.Bounds()
	assertBounds(t, Bounds{b1.X + 5, b1.Y - 5, b1.W, b1.H}, b2, fixedPrecision)
}
