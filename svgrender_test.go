package svg

import (
	"bytes"
	"compress/gzip"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/svgrender/raster"
	"github.com/pgavlin/svgrender/svgtypes"
)

func TestParseTreeSolidRedSquareRendersExactly(t *testing.T) {
	tree, err := ParseTree(strings.NewReader(`<svg width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`), DefaultOptions())
	require.NoError(t, err)

	w, h := tree.GetImageSize()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 10.0, h)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.NoError(t, tree.Render(img, svgtypes.Identity, raster.Options{}))

	c := img.RGBAAt(5, 5)
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0x00), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, uint8(0xFF), c.A)
}

func TestParseTreeGzipSVGZInput(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`<svg width="5" height="5"><rect width="5" height="5" fill="blue"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tree, err := ParseTree(&buf, DefaultOptions())
	require.NoError(t, err)
	w, h := tree.GetImageSize()
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 5.0, h)
}

func TestParseTreeMalformedGZipMagicErrors(t *testing.T) {
	_, err := ParseTree(bytes.NewReader([]byte{0x1F, 0x8B, 0x01, 0x02}), DefaultOptions())
	assert.ErrorIs(t, err, ErrMalformedGZip)
}

func TestParseTreeInvalidSizeErrors(t *testing.T) {
	_, err := ParseTree(strings.NewReader(`<svg></svg>`), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestParseTreeNoRootNodeErrors(t *testing.T) {
	_, err := ParseTree(strings.NewReader(`<notsvg></notsvg>`), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoRootNode)
}

func TestParseTreeElementsLimitReached(t *testing.T) {
	var b strings.Builder
	b.WriteString("<svg>")
	for i := 0; i < 1_000_001; i++ {
		b.WriteString("<g/>")
	}
	b.WriteString("</svg>")

	_, err := ParseTree(strings.NewReader(b.String()), DefaultOptions())
	assert.ErrorIs(t, err, ErrElementsLimitReached)
}

func TestParseTreeNodeByIDAndBBox(t *testing.T) {
	tree, err := ParseTree(strings.NewReader(`<svg width="20" height="20">
		<rect id="r1" x="2" y="3" width="4" height="5" fill="green"/>
	</svg>`), DefaultOptions())
	require.NoError(t, err)

	n := tree.NodeByID("r1")
	require.NotNil(t, n)

	b, ok := tree.GetNodeBBox("r1")
	require.True(t, ok)
	assert.Equal(t, 2.0, b.X)
	assert.Equal(t, 3.0, b.Y)
	assert.Equal(t, 4.0, b.W)
	assert.Equal(t, 5.0, b.H)

	assert.Contains(t, tree.AllNodeIDs(), "r1")
}

func TestParseTreeWarningsCollectedForInvalidUse(t *testing.T) {
	tree, err := ParseTree(strings.NewReader(`<svg width="10" height="10">
		<use id="u1" xlink:href="#u1"/>
	</svg>`), DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, tree.Warnings)
}

func TestOptionsNormalizedFillsDefaults(t *testing.T) {
	o := Options{}.normalized()
	assert.Equal(t, 96.0, o.DPI)
	assert.Equal(t, "Times New Roman", o.FontFamily)
	assert.Equal(t, 12.0, o.FontSize)
	assert.Equal(t, "en", o.Languages)
}

func TestOptionsLanguageListParsesCommaSeparated(t *testing.T) {
	o := Options{Languages: "fr, de , en"}
	assert.Equal(t, []string{"fr", "de", "en"}, o.languageList())
}
