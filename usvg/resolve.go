package usvg

import (
	"strings"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

// resolveFill and resolveStroke turn a shape's fill/stroke presentation
// attributes into a Fill/Stroke, resolving any url(#id) paint-server
// reference through the converter's cache and falling back to the paint's
// fallback color (or none) when the reference doesn't resolve.
func (c *converter) resolveFill(n *svgtree.Node) *Fill {
	raw, ok := n.Paint(svgtree.AFill)
	if !ok {
		return nil
	}
	paint, ok := c.resolvePaint(raw)
	if !ok {
		return nil
	}
	rule := svgtypes.FillRuleNonZero
	if v, _ := n.Get(svgtree.AFillRule); v == "evenodd" {
		rule = svgtypes.FillRuleEvenOdd
	}
	return &Fill{Paint: paint, Opacity: clamp01(n.Number(svgtree.AFillOpacity, 1)), Rule: rule}
}

func (c *converter) resolveStroke(n *svgtree.Node) *Stroke {
	raw, ok := n.Paint(svgtree.AStroke)
	if !ok {
		return nil
	}
	paint, ok := c.resolvePaint(raw)
	if !ok {
		return nil
	}
	width := n.Number(svgtree.AStrokeWidth, 1)
	if width <= 0 {
		return nil
	}

	s := &Stroke{
		Paint:      paint,
		Opacity:    clamp01(n.Number(svgtree.AStrokeOpacity, 1)),
		Width:      width,
		Miterlimit: n.Number(svgtree.AStrokeMiterlimit, 4),
	}
	switch v, _ := n.Get(svgtree.AStrokeLinecap); v {
	case "round":
		s.LineCap = svgtypes.LineCapRound
	case "square":
		s.LineCap = svgtypes.LineCapSquare
	}
	switch v, _ := n.Get(svgtree.AStrokeLinejoin); v {
	case "round":
		s.LineJoin = svgtypes.LineJoinRound
	case "bevel":
		s.LineJoin = svgtypes.LineJoinBevel
	}
	if v, ok := n.Get(svgtree.AStrokeDasharray); ok && v != "none" {
		s.Dasharray = parseDasharray(v)
	}
	s.Dashoffset = n.Number(svgtree.AStrokeDashoffset, 0)
	return s
}

func (c *converter) resolvePaint(p svgtypes.Paint) (Paint, bool) {
	switch p.Kind {
	case svgtypes.PaintNone:
		return Paint{}, false
	case svgtypes.PaintColor:
		return Paint{Kind: PaintColor, Color: p.Color}, true
	case svgtypes.PaintReference:
		if server := c.resolvePaintServer(p.Ref); server != nil {
			return Paint{Kind: PaintServerRef, Server: server}, true
		}
		if p.Fallback != nil {
			return Paint{Kind: PaintColor, Color: *p.Fallback}, true
		}
		return Paint{}, false
	}
	return Paint{}, false
}

// parseDasharray splits a comma/whitespace-separated length list. Unlike
// ParsePoints (which expects coordinate pairs), stroke-dasharray is a flat
// list of possibly-odd length.
func parseDasharray(s string) []float64 {
	var out []float64
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if l, err := svgtypes.ParseLength(s[start:end]); err == nil {
			out = append(out, l.Number)
		}
		start = -1
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', ' ', '\t', '\n', '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return out
}

// resolveClipPath resolves a "url(#id)" clip-path value, recursing into a
// nested clip-path on the clipPath element itself.
func (c *converter) resolveClipPath(v string) *ClipPath {
	id := refID(v)
	if id == "" {
		return nil
	}
	if cp, ok := c.clips[id]; ok {
		return cp
	}
	nid, ok := c.doc.ByID[id]
	if !ok {
		return nil
	}
	n := c.doc.Node(nid)
	if n.EId != svgtree.EClipPath {
		return nil
	}

	// clipPathUnits isn't in the closed AId set (clip-path coordinate space
	// is userSpaceOnUse by default and essentially never overridden in
	// practice), so it's fixed rather than resolved from an attribute.
	cp := &ClipPath{ID: id, Units: UnitsUserSpaceOnUse}
	c.clips[id] = cp
	if t, ok := n.Transform(svgtree.ATransform); ok {
		cp.Transform = t
	} else {
		cp.Transform = svgtypes.Identity
	}
	if v2, ok := n.Get(svgtree.AClipPath); ok {
		cp.ClipPath = c.resolveClipPath(v2)
	}
	for _, cid := range n.Children {
		cn := c.doc.Node(cid)
		if cn.EId == svgtree.ELine {
			continue // zero-area, dropped per resolved Open Question
		}
		if !svgtree.IsShapeElement(cn.EId) && cn.EId != svgtree.EText && cn.EId != svgtree.EG {
			continue
		}
		if child := c.convertNode(cid); child != nil {
			cp.Children = append(cp.Children, child)
		}
	}
	return cp
}

func (c *converter) resolveMask(v string) *Mask {
	id := refID(v)
	if id == "" {
		return nil
	}
	if m, ok := c.masks[id]; ok {
		return m
	}
	nid, ok := c.doc.ByID[id]
	if !ok {
		return nil
	}
	n := c.doc.Node(nid)
	if n.EId != svgtree.EMask {
		return nil
	}

	m := &Mask{
		ID:           id,
		Units:        ParseUnits(n.Attrs[svgtree.AMaskUnits], UnitsObjectBoundingBox),
		ContentUnits: ParseUnits(n.Attrs[svgtree.AMaskContentUnits], UnitsUserSpaceOnUse),
		Luminance:    true,
		Region: svgtypes.Rect{
			X: n.Number(svgtree.AX, -0.1), Y: n.Number(svgtree.AY, -0.1),
			W: n.Number(svgtree.AWidth, 1.2), H: n.Number(svgtree.AHeight, 1.2),
		},
	}
	c.masks[id] = m
	if v2, ok := n.Get(svgtree.AMask); ok {
		m.Mask = c.resolveMask(v2)
	}
	m.Children = c.convertChildren(n.Children)
	return m
}

func (c *converter) resolveFilter(v string) *Filter {
	id := refID(v)
	if id == "" {
		return nil
	}
	if f, ok := c.filters[id]; ok {
		return f
	}
	nid, ok := c.doc.ByID[id]
	if !ok {
		return nil
	}
	n := c.doc.Node(nid)
	if n.EId != svgtree.EFilter {
		return nil
	}

	f := &Filter{
		ID:             id,
		Units:          ParseUnits(n.Attrs[svgtree.AFilterUnits], UnitsObjectBoundingBox),
		PrimitiveUnits: ParseUnits(n.Attrs[svgtree.APrimitiveUnits], UnitsUserSpaceOnUse),
		ColorInterp:    ParseColorInterpolation(n.Attrs[svgtree.AColorInterpolationFilters]),
		Region: svgtypes.Rect{
			X: n.Number(svgtree.AX, -0.1), Y: n.Number(svgtree.AY, -0.1),
			W: n.Number(svgtree.AWidth, 1.2), H: n.Number(svgtree.AHeight, 1.2),
		},
	}
	c.filters[id] = f

	lastResult := "SourceGraphic"
	for _, cid := range n.Children {
		cn := c.doc.Node(cid)
		if !isFilterPrimitiveKind(cn.EId) {
			continue
		}
		prim := FilterPrimitive{
			Kind:   filterPrimitiveName(cn.EId),
			In:     firstNonEmpty(cn.Attrs[svgtree.AIn], lastResult),
			In2:    cn.Attrs[svgtree.AIn2],
			Params: map[string]string{},
		}
		for aid, v := range cn.Attrs {
			prim.Params[filterParamName(aid)] = v
		}
		if rv, ok := cn.Get(svgtree.AResult); ok {
			lastResult = rv
		} else {
			lastResult = prim.Kind + "@" + id
		}
		prim.Result = lastResult
		f.Primitives = append(f.Primitives, prim)
	}
	return f
}

// refID extracts the fragment id from either a bare "#id" href value or a
// "url(#id)" presentation-attribute value.
func refID(v string) string {
	if id := hrefID(v); id != "" {
		return id
	}
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return ""
	}
	end := strings.IndexByte(v, ')')
	if end < 0 {
		return ""
	}
	ref := strings.Trim(strings.TrimSpace(v[4:end]), "'\"")
	return strings.TrimPrefix(ref, "#")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
