package svgtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicDocument(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
		<rect id="r1" x="10" y="10" width="30" height="30" fill="red"/>
	</svg>`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	root := doc.Node(doc.Root)
	assert.Equal(t, ESvg, root.EId)
	require.Len(t, root.Children, 1)

	rect := doc.Node(root.Children[0])
	assert.Equal(t, ERect, rect.EId)
	assert.Equal(t, "r1", rect.ID)
	v, ok := rect.Get(AFill)
	assert.True(t, ok)
	assert.Equal(t, "red", v)
}

func TestApplyCSSCascadeOrder(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<style>rect { fill: blue; } #r1 { fill: green; }</style>
		<rect id="r1" fill="red" style="fill: yellow"/>
		<rect id="r2" fill="red"/>
	</svg>`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	r1 := doc.Node(doc.ByID["r1"])
	v, _ := r1.Get(AFill)
	assert.Equal(t, "yellow", v, "style attribute must win over both stylesheet rules and presentation attributes")

	r2 := doc.Node(doc.ByID["r2"])
	v, _ = r2.Get(AFill)
	assert.Equal(t, "blue", v, "stylesheet rule must win over a bare presentation attribute")
}

func TestInheritanceFallsBackToSpecDefault(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<g><rect id="r1" width="1" height="1"/></g>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	r1 := doc.Node(doc.ByID["r1"])
	v, ok := r1.Get(AFill)
	require.True(t, ok)
	assert.Equal(t, "black", v)
}

func TestInheritanceFromAncestor(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<g fill="blue"><rect id="r1" width="1" height="1"/></g>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	r1 := doc.Node(doc.ByID["r1"])
	v, _ := r1.Get(AFill)
	assert.Equal(t, "blue", v)
}

func TestCurrentColorSubstitution(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<rect id="r1" color="purple" fill="currentColor" width="1" height="1"/>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	r1 := doc.Node(doc.ByID["r1"])
	v, _ := r1.Get(AFill)
	assert.Equal(t, "purple", v)
}

func TestBreakCyclesGradientHref(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<linearGradient id="a" xlink:href="#b"/>
		<linearGradient id="b" xlink:href="#a"/>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	a := doc.Node(doc.ByID["a"])
	b := doc.Node(doc.ByID["b"])
	av, _ := a.Get(AHref)
	bv, _ := b.Get(AHref)
	assert.True(t, av == "none" || bv == "none", "one edge of the cycle must be broken")
	assert.NotEmpty(t, doc.Warnings)
}

func TestResolveUseExpandsSubtree(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<defs><rect id="tpl" width="5" height="5" fill="lime"/></defs>
		<use xlink:href="#tpl" x="10" y="10"/>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	root := doc.Node(doc.Root)
	var use *Node
	for _, c := range root.Children {
		n := doc.Node(c)
		if n.EId != EDefs {
			use = n
		}
	}
	require.NotNil(t, use)
	assert.Equal(t, EG, use.EId, "a resolved <use> becomes a synthetic group")
	require.Len(t, use.Children, 1)

	clone := doc.Node(use.Children[0])
	assert.Equal(t, ERect, clone.EId)
	v, _ := clone.Get(AFill)
	assert.Equal(t, "lime", v)
}

func TestResolveUseDropsSelfReference(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<use id="u1" xlink:href="#u1"/>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	u1 := doc.Node(doc.ByID["u1"])
	assert.Equal(t, EG, u1.EId)
	assert.Empty(t, u1.Children)
}

func TestResolveSwitchPicksMatchingLanguage(t *testing.T) {
	PreferredLanguages = []string{"fr"}
	defer func() { PreferredLanguages = []string{"en"} }()

	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<switch>
			<text id="en" systemLanguage="en">hi</text>
			<text id="fr" systemLanguage="fr">bonjour</text>
		</switch>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	fr, ok := doc.ByID["fr"]
	require.True(t, ok)

	root := doc.Node(doc.Root)
	sw := doc.Node(root.Children[0])
	assert.Equal(t, EG, sw.EId)
	require.Len(t, sw.Children, 1)
	assert.Equal(t, fr, sw.Children[0])
}

func TestGenerateIDsAreCollisionFree(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<linearGradient id="linearGradient1"/>
		<linearGradient/>
	</svg>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	root := doc.Node(doc.Root)
	generated := doc.Node(root.Children[1])
	assert.NotEqual(t, "linearGradient1", generated.ID)
	assert.NotEmpty(t, generated.ID)
}
