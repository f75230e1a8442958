package usvgtext

import (
	"golang.org/x/image/font/sfnt"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

// styledRun is one <text>/<tspan> text node's content plus its resolved
// style, before glyph shaping.
type styledRun struct {
	text        string
	family      []string
	size        float64
	weight      int
	italic      bool
	letterSpace float64
	anchor      TextAnchor
	decoration  Decoration
	fill        *RunPaint
	stroke      *RunPaint
	hasX, hasY  bool
	x, y        float64
	rotate      float64
	newChunk    bool
	pathID      string
	startOffset float64
}

// Shape walks an EText element's <tspan>/<textPath> children, resolves each
// run's font and style, and produces fully positioned, outlined glyph runs
// grouped into chunks. Positions are resolved at
// tspan/text granularity rather than per character: a run's own x (if
// given) opens a new chunk, where the run's x/y set the pen position (a y
// without an x does not move the pen); dx/dy are not read, and a run's
// rotate applies uniformly across its glyphs. This is a scope reduction
// from full per-character position lists; see DESIGN.md.
func Shape(doc *svgtree.Document, textNode *svgtree.Node, resolver *Resolver, st svgtypes.ResolverState) *Text {
	var runs []styledRun
	collectRuns(doc, textNode, inheritedStyle{family: []string{"sans-serif"}, size: 16, weight: 400, anchor: AnchorStart}, &runs, true)

	var buf sfnt.Buffer
	var chunks []Chunk
	var cur *Chunk

	penX, penY := 0.0, 0.0
	for _, r := range runs {
		if cur == nil || r.newChunk {
			if cur != nil {
				applyAnchor(cur)
				chunks = append(chunks, *cur)
			}
			cur = &Chunk{Anchor: r.anchor, PathID: r.pathID, StartOffset: r.startOffset}
			if r.hasX {
				penX = r.x
			}
			if r.hasY {
				penY = r.y
			}
		}

		f := resolver.Resolve(r.family, r.weight, r.italic)
		if f == nil {
			continue
		}
		run := Run{FontFamily: joinFamily(r.family), FontSize: r.size, Fill: r.fill, Stroke: r.stroke, Decoration: r.decoration}
		for _, ch := range r.text {
			outline, advance, ok := outlineGlyph(f, &buf, ch, r.size)
			if !ok {
				continue
			}
			g := Glyph{Rune: ch, X: penX, Y: penY, Rotate: r.rotate, Advance: advance, Outline: translatePath(outline, penX, penY)}
			run.Glyphs = append(run.Glyphs, g)
			penX += advance + r.letterSpace
		}
		cur.Runs = append(cur.Runs, run)
	}
	if cur != nil {
		applyAnchor(cur)
		chunks = append(chunks, *cur)
	}

	return &Text{Chunks: chunks}
}

func translatePath(p svgtypes.Path, dx, dy float64) svgtypes.Path {
	var out svgtypes.Path
	for _, s := range p.Segments {
		switch s.Kind {
		case svgtypes.SegMoveTo:
			out.MoveTo(s.X+dx, s.Y+dy)
		case svgtypes.SegLineTo:
			out.LineTo(s.X+dx, s.Y+dy)
		case svgtypes.SegCubicTo:
			out.CubicTo(s.X1+dx, s.Y1+dy, s.X2+dx, s.Y2+dy, s.X+dx, s.Y+dy)
		case svgtypes.SegClose:
			out.Close()
		}
	}
	return out
}

// applyAnchor shifts every glyph in the chunk so the anchor point (start/
// middle/end of the chunk's total advance) lands on the chunk's nominal
// start position.8.
func applyAnchor(c *Chunk) {
	if c.Anchor == AnchorStart || len(c.Runs) == 0 {
		return
	}
	var total float64
	for _, r := range c.Runs {
		for _, g := range r.Glyphs {
			total += g.Advance
		}
	}
	var shift float64
	if c.Anchor == AnchorMiddle {
		shift = -total / 2
	} else {
		shift = -total
	}
	for ri := range c.Runs {
		for gi := range c.Runs[ri].Glyphs {
			c.Runs[ri].Glyphs[gi].Outline = translatePath(c.Runs[ri].Glyphs[gi].Outline, shift, 0)
			c.Runs[ri].Glyphs[gi].X += shift
		}
	}
}

func joinFamily(fams []string) string {
	if len(fams) == 0 {
		return "sans-serif"
	}
	return fams[0]
}
