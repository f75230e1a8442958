package usvgtext

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/pgavlin/svgrender/svgtypes"
)

// outlineGlyph extracts r's outline from f at the given font size (in user
// units) and returns it as a cubic-only svgtypes.Path, translated so (0,0)
// is the glyph's origin and mirrored on Y: font outlines are Y-up in font
// units (glyphs are "upside-down" relative to SVG's Y-down user space), so
// flipping Y is required before the path can be placed directly on the
// baseline.
func outlineGlyph(f *sfnt.Font, buf *sfnt.Buffer, r rune, fontSize float64) (svgtypes.Path, float64, bool) {
	idx, err := f.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		idx, err = f.GlyphIndex(buf, 0) // .notdef.notdef+warn"
		if err != nil {
			return svgtypes.Path{}, 0, false
		}
	}

	unitsPerEm, err := f.UnitsPerEm()
	if err != nil || unitsPerEm == 0 {
		unitsPerEm = 1000
	}
	scale := fontSize / float64(unitsPerEm)

	const ppem = fixed.Int26_6(1 << 14) // shape in a large fixed-point unit, then scale down ourselves
	segs, err := f.LoadGlyph(buf, idx, ppem, nil)
	if err != nil {
		return svgtypes.Path{}, 0, false
	}
	emScale := scale * float64(unitsPerEm) / (float64(ppem) / 64)

	var path svgtypes.Path
	toXY := func(p fixed.Point26_6) (float64, float64) {
		x := float64(p.X) / 64 * emScale
		y := -float64(p.Y) / 64 * emScale // flip Y
		return x, y
	}
	var cur fixed.Point26_6
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := toXY(seg.Args[0])
			path.MoveTo(x, y)
			cur = seg.Args[0]
		case sfnt.SegmentOpLineTo:
			x, y := toXY(seg.Args[0])
			path.LineTo(x, y)
			cur = seg.Args[0]
		case sfnt.SegmentOpQuadTo:
			x0, y0 := toXY(cur)
			x1, y1 := toXY(seg.Args[0])
			x, y := toXY(seg.Args[1])
			c1x := x0 + 2.0/3.0*(x1-x0)
			c1y := y0 + 2.0/3.0*(y1-y0)
			c2x := x + 2.0/3.0*(x1-x)
			c2y := y + 2.0/3.0*(y1-y)
			path.CubicTo(c1x, c1y, c2x, c2y, x, y)
			cur = seg.Args[1]
		case sfnt.SegmentOpCubeTo:
			x1, y1 := toXY(seg.Args[0])
			x2, y2 := toXY(seg.Args[1])
			x, y := toXY(seg.Args[2])
			path.CubicTo(x1, y1, x2, y2, x, y)
			cur = seg.Args[2]
		}
	}

	advance, err := f.GlyphAdvance(buf, idx, ppem, font.HintingNone)
	adv := 0.0
	if err == nil {
		adv = float64(advance) / 64 * emScale
	}
	return path, adv, true
}
