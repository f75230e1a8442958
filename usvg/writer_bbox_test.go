package usvg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/svgrender/svgtree"
)

func TestGetNodeBBoxTransformedThroughAncestors(t *testing.T) {
	tree := convertSrc(t, `<svg width="100" height="100">
		<g transform="translate(10,10)"><rect id="r1" width="5" height="5" fill="red"/></g>
	</svg>`)

	b, ok := tree.GetNodeBBox("r1")
	require.True(t, ok)
	assert.Equal(t, 10.0, b.X)
	assert.Equal(t, 10.0, b.Y)
	assert.Equal(t, 5.0, b.W)
	assert.Equal(t, 5.0, b.H)
}

func TestGetNodeBBoxUnknownIDIsAbsent(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10"><rect width="5" height="5" fill="red"/></svg>`)
	_, ok := tree.GetNodeBBox("nope")
	assert.False(t, ok)
}

func TestGetImageSizeAndViewBox(t *testing.T) {
	tree := convertSrc(t, `<svg viewBox="0 0 10 10"></svg>`)
	w, h := tree.GetImageSize()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 10.0, h)

	vb := tree.GetImageViewBox()
	assert.Equal(t, 10.0, vb.Rect.Rect.W)
}

func TestWriteSVGRoundTripBBoxEquivalent(t *testing.T) {
	tree := convertSrc(t, `<svg width="20" height="20">
		<rect id="r1" x="2" y="3" width="5" height="6" fill="blue"/>
	</svg>`)

	var buf bytes.Buffer
	require.NoError(t, tree.WriteSVG(&buf))

	doc, err := svgtree.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	roundTripped, _, err := Convert(doc, DefaultOptions())
	require.NoError(t, err)

	orig, ok := tree.GetNodeBBox("r1")
	require.True(t, ok)
	rt, ok := roundTripped.GetNodeBBox("r1")
	require.True(t, ok)

	assert.InDelta(t, orig.X, rt.X, 1e-6)
	assert.InDelta(t, orig.Y, rt.Y, 1e-6)
	assert.InDelta(t, orig.W, rt.W, 1e-6)
	assert.InDelta(t, orig.H, rt.H, 1e-6)
}

func TestWriteSVGOmitsCSSAndCurrentColor(t *testing.T) {
	tree := convertSrc(t, `<svg width="10" height="10">
		<rect width="5" height="5" color="purple" fill="currentColor"/>
	</svg>`)

	var buf bytes.Buffer
	require.NoError(t, tree.WriteSVG(&buf))
	out := buf.String()

	assert.NotContains(t, out, "currentColor")
	assert.NotContains(t, out, "<style")
	assert.NotContains(t, out, " style=")
	assert.Contains(t, out, "#800080", "currentColor must resolve to the effective color property before serialization")
}
