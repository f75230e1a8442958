package svgtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLengthUnits(t *testing.T) {
	cases := []struct {
		in   string
		num  float64
		unit Unit
	}{
		{"10", 10, UnitNone},
		{"10px", 10, UnitPx},
		{"2.5em", 2.5, UnitEm},
		{"50%", 50, UnitPercent},
		{"1in", 1, UnitIn},
		{"2pt", 2, UnitPt},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.num, l.Number, c.in)
		assert.Equal(t, c.unit, l.Unit, c.in)
	}

	_, err := ParseLength("")
	assert.Error(t, err)
}

func TestResolveLengthPhysicalUnits(t *testing.T) {
	st := ResolverState{DPI: 96, FontSize: 16, ViewportW: 200, ViewportH: 100}

	assert.Equal(t, 96.0, Resolve(MustParseLength("1in"), AxisX, st))
	assert.Equal(t, 96.0/2.54, Resolve(MustParseLength("1cm"), AxisX, st))
	assert.InDelta(t, 96.0/72.0, Resolve(MustParseLength("1pt"), AxisX, st), 1e-9)
	assert.Equal(t, 32.0, Resolve(MustParseLength("2em"), AxisX, st))
}

func TestResolvePercentAgainstViewportAxis(t *testing.T) {
	st := ResolverState{ViewportW: 200, ViewportH: 100}

	assert.Equal(t, 100.0, Resolve(MustParseLength("50%"), AxisX, st))
	assert.Equal(t, 50.0, Resolve(MustParseLength("50%"), AxisY, st))

	diag := Resolve(MustParseLength("100%"), AxisDiagonal, st)
	assert.InDelta(t, 158.11, diag, 0.1)
}

func TestResolvePercentObjectBoundingBox(t *testing.T) {
	st := ResolverState{ObjectUnits: true}
	assert.Equal(t, 0.5, Resolve(MustParseLength("50%"), AxisX, st))
}

func TestParseColorNamedHexAndFunctional(t *testing.T) {
	c, ok := ParseColor("red")
	require.True(t, ok)
	assert.Equal(t, Color{R: 0xFF, G: 0, B: 0}, c)

	c, ok = ParseColor("#0f0")
	require.True(t, ok)
	assert.Equal(t, Color{R: 0, G: 0xFF, B: 0}, c)

	c, ok = ParseColor("#0000ff")
	require.True(t, ok)
	assert.Equal(t, Color{R: 0, G: 0, B: 0xFF}, c)

	c, ok = ParseColor("rgb(10, 20, 30)")
	require.True(t, ok)
	assert.Equal(t, Color{R: 10, G: 20, B: 30}, c)

	_, ok = ParseColor("not-a-color")
	assert.False(t, ok)
}

func TestParsePaintVariants(t *testing.T) {
	p := ParsePaint("none")
	assert.Equal(t, PaintNone, p.Kind)

	p = ParsePaint("red")
	assert.Equal(t, PaintColor, p.Kind)
	assert.Equal(t, Color{R: 0xFF}, p.Color)

	p = ParsePaint("url(#grad1)")
	assert.Equal(t, PaintReference, p.Kind)
	assert.Equal(t, "grad1", p.Ref)
	assert.Nil(t, p.Fallback)

	p = ParsePaint("url(#grad1) blue")
	require.NotNil(t, p.Fallback)
	assert.Equal(t, Color{B: 0xFF}, *p.Fallback)
}

func TestTransformComposition(t *testing.T) {
	tr, err := ParseTransform("translate(10,20) scale(2)")
	require.NoError(t, err)
	assert.True(t, tr.IsFinite())

	x, y := tr.Apply(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 22.0, y)
}

func TestTransformIdentityAndDegenerate(t *testing.T) {
	assert.True(t, Identity.IsIdentity())
	assert.False(t, Identity.IsDegenerate())

	degenerate := Scale(0, 1)
	assert.True(t, degenerate.IsDegenerate())
}

func TestPathValidRequiresLeadingMoveTo(t *testing.T) {
	var p Path
	assert.False(t, p.Valid())

	p.MoveTo(0, 0)
	assert.False(t, p.Valid(), "a single segment is not enough")

	p.LineTo(10, 0)
	assert.True(t, p.Valid())
}

func TestParsePathDataConvertsRelativeOps(t *testing.T) {
	p := ParsePathData("M0 0 l10 0 L10 10 Z")
	require.True(t, p.Valid())

	assert.Equal(t, SegMoveTo, p.Segments[0].Kind)
	for _, seg := range p.Segments[1:] {
		assert.NotEqual(t, SegMoveTo, seg.Kind)
	}
	last := p.Segments[len(p.Segments)-1]
	assert.Equal(t, SegClose, last.Kind)
}

func TestParsePathDataArcBecomesCubics(t *testing.T) {
	p := ParsePathData("M0 0 A5 5 0 0 1 10 0")
	for _, seg := range p.Segments {
		assert.Contains(t, []SegmentKind{SegMoveTo, SegCubicTo}, seg.Kind)
	}
}

func TestRectUnion(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	o := Rect{X: 5, Y: 5, W: 10, H: 10}
	u := r.Union(o)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 15, H: 15}, u)
}

func TestNewNonZeroRectRejectsNonPositive(t *testing.T) {
	_, ok := NewNonZeroRect(0, 0, 0, 10)
	assert.False(t, ok)

	r, ok := NewNonZeroRect(0, 0, 10, 10)
	assert.True(t, ok)
	assert.Equal(t, 10.0, r.W)
}
