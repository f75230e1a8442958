package raster

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

func buildTree(t *testing.T, src string) *usvg.Tree {
	t.Helper()
	doc, err := svgtree.Parse(strings.NewReader(src))
	require.NoError(t, err)
	tree, _, err := usvg.Convert(doc, usvg.DefaultOptions())
	require.NoError(t, err)
	return tree
}

func TestRenderSolidRedSquare(t *testing.T) {
	tree := buildTree(t, `<svg width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := Render(tree, img, svgtypes.Identity, Options{})
	require.NoError(t, err)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := img.RGBAAt(x, y)
			assert.Equal(t, uint8(0xFF), c.R, "x=%d y=%d", x, y)
			assert.Equal(t, uint8(0x00), c.G, "x=%d y=%d", x, y)
			assert.Equal(t, uint8(0x00), c.B, "x=%d y=%d", x, y)
			assert.Equal(t, uint8(0xFF), c.A, "x=%d y=%d", x, y)
		}
	}
}

func TestRenderNodeUnknownIDReturnsError(t *testing.T) {
	tree := buildTree(t, `<svg width="10" height="10"><rect id="r1" width="10" height="10" fill="red"/></svg>`)
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := RenderNode(tree, "missing", img, svgtypes.Identity, Options{})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestRenderNodeByIDRendersOnlyThatSubtree(t *testing.T) {
	tree := buildTree(t, `<svg width="10" height="10">
		<rect id="r1" x="0" y="0" width="5" height="10" fill="red"/>
		<rect id="r2" x="5" y="0" width="5" height="10" fill="blue"/>
	</svg>`)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := RenderNode(tree, "r2", img, svgtypes.Identity, Options{})
	require.NoError(t, err)

	left := img.RGBAAt(1, 5)
	right := img.RGBAAt(6, 5)
	assert.Equal(t, uint8(0), left.A, "r1 should not have been rendered")
	assert.Equal(t, uint8(0xFF), right.B)
}

func TestRenderBackgroundFillsTransparentPixels(t *testing.T) {
	tree := buildTree(t, `<svg width="4" height="4"></svg>`)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	bg := svgtypes.Color{R: 0, G: 0xFF, B: 0}
	err := Render(tree, img, svgtypes.Identity, Options{Background: &bg})
	require.NoError(t, err)

	c := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0xFF), c.A)
	assert.Equal(t, uint8(0xFF), c.G)
}
