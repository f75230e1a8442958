package usvgtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

func TestResolveWeightBolderAndLighterDeltas(t *testing.T) {
	assert.Equal(t, 700, ResolveWeight("bolder", 400), "bolder from 400 must reach 700, not CSS2's 500")
	assert.Equal(t, 100, ResolveWeight("lighter", 400))
	assert.Equal(t, 700, ResolveWeight("bold", 400))
	assert.Equal(t, 400, ResolveWeight("normal", 700))
	assert.Equal(t, 600, ResolveWeight("600", 400))
}

func TestParseFontFamilyListSplitsAndUnquotes(t *testing.T) {
	got := ParseFontFamilyList(`"Times New Roman", sans-serif`)
	require.Len(t, got, 2)
	assert.Equal(t, "Times New Roman", got[0])
	assert.Equal(t, "sans-serif", got[1])
}

func TestResolverFallsBackToBundledFont(t *testing.T) {
	r := NewResolver()
	f := r.Resolve([]string{"NoSuchFontAnywhere"}, 400, false)
	require.NotNil(t, f, "Resolve must fall back to the bundled sans-serif face rather than return nil")
}

func TestShapeProducesOneGlyphPerCharacter(t *testing.T) {
	doc, err := svgtree.Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><text>Hi</text></svg>`))
	require.NoError(t, err)

	root := doc.Node(doc.Root)
	var textNode *svgtree.Node
	for _, cid := range root.Children {
		n := doc.Node(cid)
		if n.EId == svgtree.EText {
			textNode = n
		}
	}
	require.NotNil(t, textNode)

	resolver := NewResolver()
	st := svgtypes.ResolverState{DPI: 96, FontSize: 16, ViewportW: 100, ViewportH: 100}
	text := Shape(doc, textNode, resolver, st)

	require.Len(t, text.Chunks, 1)
	require.Len(t, text.Chunks[0].Runs, 1)
	assert.Len(t, text.Chunks[0].Runs[0].Glyphs, 2)
}

func TestShapeAdvancesPenPositionAcrossGlyphs(t *testing.T) {
	doc, err := svgtree.Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><text>AA</text></svg>`))
	require.NoError(t, err)
	root := doc.Node(doc.Root)
	textNode := doc.Node(root.Children[0])

	resolver := NewResolver()
	st := svgtypes.ResolverState{DPI: 96, FontSize: 16, ViewportW: 100, ViewportH: 100}
	text := Shape(doc, textNode, resolver, st)

	glyphs := text.Chunks[0].Runs[0].Glyphs
	require.Len(t, glyphs, 2)
	assert.Greater(t, glyphs[1].X, glyphs[0].X, "the second glyph must be advanced past the first")
}
