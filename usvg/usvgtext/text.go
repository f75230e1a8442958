// Package usvgtext shapes and lays out <text> content into positioned,
// outlined glyph runs for the render tree. It starts a new chunk at the
// first run and at every run with its own absolute x, and takes x/y and the
// first rotate value at run granularity: there are no per-character
// position lists, dx/dy are not read, and a rotate is not carried into
// child runs. Glyphs are laid out in logical order, with no bidirectional
// reordering. It resolves fonts the way
// the teacher's renderer_fonts.go does (bundled Go fonts as the universal
// fallback, flopp/go-findfont for named system families), and outlines each
// glyph into the same cubic-Bézier svgtypes.Path the rest of the render
// tree uses.
package usvgtext

import "github.com/pgavlin/svgrender/svgtypes"

// WritingMode is the block-progression direction of a text chunk.
type WritingMode int

const (
	WritingModeLRTB WritingMode = iota
	WritingModeTBRL
)

// Glyph is one shaped, positioned, outlined character.
type Glyph struct {
	Rune      rune
	X, Y      float64 // pen position, in the text element's local coordinate system
	Rotate    float64 // radians
	Advance   float64
	Outline   svgtypes.Path // already scaled to font-size, Y-mirrored out of font units
	Ascent    float64
	Descent   float64
}

// Run is the sequence of glyphs from one <text>/<tspan> character-data
// node, sharing one resolved font and fill/stroke.
type Run struct {
	Glyphs     []Glyph
	FontFamily string
	FontSize   float64
	Fill       *RunPaint
	Stroke     *RunPaint
	Decoration Decoration
}

// RunPaint mirrors usvg.Fill/Stroke without importing usvg (which would
// create an import cycle, since usvg.Convert calls into this package); the
// converter re-wraps these into usvg.Fill/Stroke when it builds the Text
// node.
type RunPaint struct {
	Kind    int // 0 = none, 1 = color, 2 = paint-server ref
	ColorR  uint8
	ColorG  uint8
	ColorB  uint8
	ServerRef string
	Opacity float64
	Width   float64 // stroke only
}

type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationUnderline
	DecorationOverline
	DecorationLineThrough
)

// Chunk is a maximal run of text not interrupted by a run with its own
// absolute x; a <textPath> does not by itself start one. TextAnchor alignment is applied per-chunk: the whole chunk
// shifts so its anchor point lands on the chunk's nominal start position.
type Chunk struct {
	Runs       []Run
	Anchor     TextAnchor
	PathID     string // non-empty if this chunk flows along a textPath
	StartOffset float64
}

type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// Text is the fully shaped content of one <text> element, ready for the
// rasterizer to fill/stroke/outline glyph-by-glyph.
type Text struct {
	Chunks      []Chunk
	WritingMode WritingMode
}
