package usvgtext

import (
	"strconv"
	"strings"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

type inheritedStyle struct {
	family      []string
	size        float64
	weight      int
	italic      bool
	letterSpace float64
	anchor      TextAnchor
	decoration  Decoration
	fill        *RunPaint
	stroke      *RunPaint
}

// collectRuns walks n's element and text children in document order,
// resolving each text node's style against its inherited context and
// emitting one styledRun per contiguous character-data node. `root`
// controls whether the very first run is forced to start a new chunk.
func collectRuns(doc *svgtree.Document, n *svgtree.Node, inherited inheritedStyle, out *[]styledRun, root bool) {
	style := resolveStyle(n, inherited)
	first := true

	hasX := false
	hasY := false
	var x, y float64
	if l, ok := n.Length(svgtree.AX); ok {
		hasX, x = true, l.Number
	}
	if l, ok := n.Length(svgtree.AY); ok {
		hasY, y = true, l.Number
	}
	var rotate float64
	if v, ok := n.Get(svgtree.ARotate); ok {
		rotate = parseFirstAngle(v)
	}

	pathID := ""
	startOffset := 0.0
	if n.EId == svgtree.ETextPath {
		if href, ok := n.Get(svgtree.AHref); ok {
			pathID = hrefFragment(href)
		}
		startOffset = n.Number(svgtree.AStartOffset, 0)
	}

	if n.Text != "" {
		*out = append(*out, styledRun{
			text: n.Text, family: style.family, size: style.size, weight: style.weight,
			italic: style.italic, letterSpace: style.letterSpace, anchor: style.anchor,
			decoration: style.decoration, fill: style.fill, stroke: style.stroke,
			hasX: hasX || root, hasY: hasY || root, x: x, y: y, rotate: rotate,
			newChunk: root || hasX, pathID: pathID, startOffset: startOffset,
		})
		first = false
	}

	for _, cid := range n.Children {
		c := doc.Node(cid)
		if c.EId != svgtree.ETSpan && c.EId != svgtree.ETextPath {
			continue
		}
		collectRuns(doc, c, style, out, first && n.Text == "")
		first = false
	}
}

func hrefFragment(v string) string {
	if len(v) > 0 && v[0] == '#' {
		return v[1:]
	}
	return ""
}

// parseFirstAngle reads the leading number of a rotate="n n n ..." list
// (space and/or comma separated) and converts it from degrees to radians.
// Per-character rotate lists are resolved at run granularity (see Shape's
// doc comment), so only the first value is used.
func parseFirstAngle(v string) float64 {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) == 0 {
		return 0
	}
	if n, err := strconv.ParseFloat(fields[0], 64); err == nil {
		return n * 3.141592653589793 / 180
	}
	return 0
}

func resolveStyle(n *svgtree.Node, inherited inheritedStyle) inheritedStyle {
	style := inherited
	if v, ok := n.Get(svgtree.AFontFamily); ok {
		style.family = ParseFontFamilyList(v)
	}
	if l, ok := n.Length(svgtree.AFontSize); ok {
		style.size = l.Number
	}
	if v, ok := n.Get(svgtree.AFontWeight); ok {
		style.weight = ResolveWeight(v, style.weight)
	}
	if v, ok := n.Get(svgtree.AFontStyle); ok {
		style.italic = v == "italic" || v == "oblique"
	}
	if l, ok := n.Length(svgtree.ALetterSpacing); ok {
		style.letterSpace = l.Number
	}
	if v, ok := n.Get(svgtree.ATextAnchor); ok {
		switch v {
		case "middle":
			style.anchor = AnchorMiddle
		case "end":
			style.anchor = AnchorEnd
		default:
			style.anchor = AnchorStart
		}
	}
	if v, ok := n.Get(svgtree.ATextDecoration); ok {
		switch v {
		case "underline":
			style.decoration = DecorationUnderline
		case "overline":
			style.decoration = DecorationOverline
		case "line-through":
			style.decoration = DecorationLineThrough
		default:
			style.decoration = DecorationNone
		}
	}
	if p, ok := n.Paint(svgtree.AFill); ok {
		style.fill = toRunPaint(p, n.Number(svgtree.AFillOpacity, 1))
	}
	if p, ok := n.Paint(svgtree.AStroke); ok {
		style.stroke = toRunPaint(p, n.Number(svgtree.AStrokeOpacity, 1))
		if style.stroke != nil {
			style.stroke.Width = n.Number(svgtree.AStrokeWidth, 1)
		}
	}
	return style
}

func toRunPaint(p svgtypes.Paint, opacity float64) *RunPaint {
	switch p.Kind {
	case svgtypes.PaintColor:
		return &RunPaint{Kind: 1, ColorR: p.Color.R, ColorG: p.Color.G, ColorB: p.Color.B, Opacity: opacity}
	case svgtypes.PaintReference:
		return &RunPaint{Kind: 2, ServerRef: p.Ref, Opacity: opacity}
	default:
		return nil
	}
}
