package xmltree

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildsArenaTree(t *testing.T) {
	tree, err := Parse(strings.NewReader(`<svg width="10"><rect id="r1"/>text</svg>`))
	require.NoError(t, err)

	root := tree.Node(tree.Root)
	assert.Equal(t, "svg", root.Local)
	v, ok := root.Attr("width")
	require.True(t, ok)
	assert.Equal(t, "10", v)
	require.Len(t, root.Children, 1)

	rect := tree.Node(root.Children[0])
	assert.Equal(t, "rect", rect.Local)
	assert.Equal(t, rect.Parent, tree.Root)
}

func TestParseNoRootElementErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(``))
	assert.Error(t, err)
}

func TestParseElementsLimitReached(t *testing.T) {
	var b strings.Builder
	b.WriteString("<svg>")
	for i := 0; i < MaxElements+1; i++ {
		b.WriteString("<g/>")
	}
	b.WriteString("</svg>")

	_, err := Parse(strings.NewReader(b.String()))
	assert.ErrorIs(t, err, ErrElementsLimitReached)
}

func TestParseDepthLimitReached(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxDepth+2; i++ {
		b.WriteString("<g>")
	}
	for i := 0; i < MaxDepth+2; i++ {
		b.WriteString("</g>")
	}

	_, err := Parse(strings.NewReader(b.String()))
	assert.ErrorIs(t, err, ErrNodesLimitReached)
}

func TestDecompressPassesThroughPlainInput(t *testing.T) {
	out, err := Decompress([]byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), out)
}

func TestDecompressGunzipsGzipMagic(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("<svg/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, err := Decompress(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), out)
}

func TestDecompressMalformedGZipMagicErrors(t *testing.T) {
	_, err := Decompress([]byte{0x1F, 0x8B, 0x00, 0x01, 0x02})
	assert.ErrorIs(t, err, ErrMalformedGZip)
}
