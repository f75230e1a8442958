package usvg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/svgrender/svgtree"
)

func convertSrc(t *testing.T, src string) *Tree {
	t.Helper()
	doc, err := svgtree.Parse(strings.NewReader(src))
	require.NoError(t, err)
	tree, _, err := Convert(doc, DefaultOptions())
	require.NoError(t, err)
	return tree
}

func TestConvertSolidRectFill(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<rect width="10" height="10" fill="red"/>
	</svg>`)

	require.Len(t, tree.Root.Children, 1)
	rect := tree.Root.Children[0]
	require.Equal(t, KindPath, rect.Kind)
	require.NotNil(t, rect.Fill)
	assert.Equal(t, PaintColor, rect.Fill.Paint.Kind)
	assert.Equal(t, uint8(0xFF), rect.Fill.Paint.Color.R)
}

func TestConvertRootSizeFromViewBoxOnly(t *testing.T) {
	tree := convertSrc(t, `<svg viewBox="0 0 10 10"></svg>`)
	assert.Equal(t, 10.0, tree.Width)
	assert.Equal(t, 10.0, tree.Height)
}

func TestConvertPercentSizeFallsBackToDefaultSize(t *testing.T) {
	doc, err := svgtree.Parse(strings.NewReader(`<svg width="50%" height="50%"></svg>`))
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.DefaultWidth, opts.DefaultHeight = 200, 100
	tree, _, err := Convert(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, 100.0, tree.Width)
	assert.Equal(t, 50.0, tree.Height)
}

func TestConvertInvalidSizeErrors(t *testing.T) {
	doc, err := svgtree.Parse(strings.NewReader(`<svg></svg>`))
	require.NoError(t, err)
	_, _, err = Convert(doc, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestConvertRecursivePatternFillNeutralized(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<defs><pattern id="p" width="1" height="1"><rect width="1" height="1" fill="url(#p)"/></pattern></defs>
		<rect width="10" height="10" fill="url(#p)"/>
	</svg>`)

	require.Len(t, tree.Root.Children, 1)
	outer := tree.Root.Children[0]
	require.NotNil(t, outer.Fill)
	require.NotNil(t, outer.Fill.Paint.Server)

	content := outer.Fill.Paint.Server.Content
	require.NotNil(t, content)
	require.Len(t, content.Children, 1)
	inner := content.Children[0]
	assert.Nil(t, inner.Fill, "the pattern's self-referencing fill must resolve to none, leaving the shape unfilled")
}

func TestConvertGradientStopsNormalized(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<defs>
			<linearGradient id="g">
				<stop offset="0.7" stop-color="red"/>
				<stop offset="0.5" stop-color="green"/>
				<stop offset="0.5" stop-color="blue"/>
				<stop offset="0.5" stop-color="yellow"/>
			</linearGradient>
		</defs>
		<rect width="10" height="10" fill="url(#g)"/>
	</svg>`)

	rect := tree.Root.Children[0]
	require.NotNil(t, rect.Fill.Paint.Server)
	stops := rect.Fill.Paint.Server.Stops
	require.GreaterOrEqual(t, len(stops), 2)
	for i := 1; i < len(stops); i++ {
		assert.Greater(t, stops[i].Offset, stops[i-1].Offset, "stops must be strictly increasing")
		assert.GreaterOrEqual(t, stops[i].Offset, 0.0)
		assert.LessOrEqual(t, stops[i].Offset, 1.0)
	}
}

func TestConvertFilterInvalidReferenceDropsSubtree(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<g filter="url(#missing)"><rect width="5" height="5" fill="red"/></g>
		<rect id="sibling" width="5" height="5" fill="blue"/>
	</svg>`)

	for _, n := range tree.Root.Children {
		assert.NotEqual(t, "", n.ID)
	}
	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "sibling", tree.Root.Children[0].ID)
}

func TestConvertUseOfSymbolWithViewBox(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<symbol id="s" viewBox="0 0 100 100"><circle cx="50" cy="50" r="40"/></symbol>
		<use xlink:href="#s" width="10" height="10"/>
	</svg>`)

	require.Len(t, tree.Root.Children, 1)
	g := tree.Root.Children[0]
	assert.Equal(t, KindGroup, g.Kind)
	require.NotEmpty(t, g.Children)
}

func TestConvertEmptyDefaultGroupIsPruned(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<g></g>
		<rect id="sibling" width="5" height="5" fill="red"/>
	</svg>`)

	require.Len(t, tree.Root.Children, 1, "a childless <g> with no opacity/clip/mask/filter/transform/id would not alter rendering and must be pruned")
	assert.Equal(t, "sibling", tree.Root.Children[0].ID)
}

func TestConvertOpacityForcesGroup(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<rect width="5" height="5" fill="red" opacity="0.5"/>
	</svg>`)

	require.Len(t, tree.Root.Children, 1)
	g := tree.Root.Children[0]
	assert.Equal(t, KindGroup, g.Kind)
	assert.Equal(t, 0.5, g.Opacity)
}
