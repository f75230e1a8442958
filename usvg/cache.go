package usvg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg/usvgtext"
)

// converter carries the state threaded through one document conversion: the
// source tree, the resolver state for length percentages, and the
// paint-server/clip/mask/filter caches that guarantee each referenced
// definition is resolved exactly once no matter how many elements use it
//").
type converter struct {
	doc  *svgtree.Document
	st   svgtypes.ResolverState
	warn []svgtree.Warning

	servers map[string]*PaintServer
	clips   map[string]*ClipPath
	masks   map[string]*Mask
	filters map[string]*Filter

	// resolving tracks paint-server ids currently partway through
	// resolvePaintServer, so a pattern whose content refers back to its own
	// id sees a miss instead of the cache's
	// not-yet-finished entry: returning nil here is what lets resolvePaint
	// rewrite that fill to none instead of closing a cycle through itself.
	resolving map[string]bool

	fonts *usvgtext.Resolver

	genCounters map[string]int
}

func newConverter(doc *svgtree.Document, st svgtypes.ResolverState) *converter {
	return &converter{
		doc:         doc,
		st:          st,
		servers:     map[string]*PaintServer{},
		clips:       map[string]*ClipPath{},
		masks:       map[string]*Mask{},
		filters:     map[string]*Filter{},
		resolving:   map[string]bool{},
		fonts:       usvgtext.NewResolver(),
		genCounters: map[string]int{},
	}
}

// genID mints a collision-free id for a render-tree-internal definition
// (e.g. the synthetic clip path a nested <svg> viewport needs), following
// the same per-kind monotonic-counter scheme as svgtree.GenerateIDs.
func (c *converter) genID(prefix string) string {
	for {
		c.genCounters[prefix]++
		candidate := fmt.Sprintf("%s%d", prefix, c.genCounters[prefix])
		if !c.doc.AllIDs[candidate] {
			c.doc.AllIDs[candidate] = true
			return candidate
		}
	}
}

func (c *converter) warnf(elementID, format string, args ...any) {
	c.warn = append(c.warn, svgtree.Warning{ElementID: elementID, Message: fmt.Sprintf(format, args...)})
}

// resolvePaintServer resolves (and caches) the paint server named by id,
// following linearGradient/radialGradient href inheritance chains: an attribute absent on the referencing node is filled from the
// href target, transitively.
func (c *converter) resolvePaintServer(id string) *PaintServer {
	if s, ok := c.servers[id]; ok {
		return s
	}
	if c.resolving[id] {
		return nil
	}
	nid, ok := c.doc.ByID[id]
	if !ok {
		return nil
	}
	n := c.doc.Node(nid)

	c.resolving[id] = true
	defer delete(c.resolving, id)

	switch n.EId {
	case svgtree.ELinearGradient, svgtree.ERadialGradient:
		return c.resolveGradient(id, nid)
	case svgtree.EPattern:
		return c.resolvePattern(id, nid)
	}
	return nil
}

// gradientAttrs walks a gradient's href chain collecting the first value
// seen for each attribute (the referencing node's own value wins), and the
// first chain member with any <stop> children for its stop list.
type gradientAttrs struct {
	attrs map[svgtree.AId]string
	stops []svgtree.NodeID
	kind  svgtree.EId
}

func (c *converter) collectGradientChain(nid svgtree.NodeID) gradientAttrs {
	ga := gradientAttrs{attrs: map[svgtree.AId]string{}}
	visited := map[svgtree.NodeID]bool{}
	cur := nid
	first := true
	for {
		if visited[cur] {
			break
		}
		visited[cur] = true
		n := c.doc.Node(cur)
		if first {
			ga.kind = n.EId
			first = false
		}
		for aid, v := range n.Attrs {
			if n.EId != ga.kind {
				switch aid {
				case svgtree.AX1, svgtree.AY1, svgtree.AX2, svgtree.AY2, svgtree.ACx, svgtree.ACy, svgtree.AR, svgtree.AFx, svgtree.AFy:
					continue // coordinate attributes come only from the same gradient kind
				}
			}
			if _, ok := ga.attrs[aid]; !ok {
				ga.attrs[aid] = v
			}
		}
		if len(ga.stops) == 0 && len(n.Children) > 0 {
			for _, ch := range n.Children {
				if c.doc.Node(ch).EId == svgtree.EStop {
					ga.stops = append(ga.stops, ch)
				}
			}
		}
		href, ok := n.Attrs[svgtree.AHref]
		if !ok {
			break
		}
		ref := hrefID(href)
		target, ok := c.doc.ByID[ref]
		if !ok {
			break
		}
		cur = target
	}
	return ga
}

func hrefID(v string) string {
	if len(v) > 0 && v[0] == '#' {
		return v[1:]
	}
	return ""
}

func (c *converter) resolveGradient(id string, nid svgtree.NodeID) *PaintServer {
	ga := c.collectGradientChain(nid)
	ps := &PaintServer{ID: id}

	ps.Units = ParseUnits(ga.attrs[svgtree.AGradientUnits], UnitsObjectBoundingBox)
	if tv, ok := ga.attrs[svgtree.AGradientTransform]; ok {
		if t, err := svgtypes.ParseTransform(tv); err == nil {
			ps.Transform = t
		}
	} else {
		ps.Transform = svgtypes.Identity
	}
	ps.Spread = parseSpreadMethod(ga.attrs[svgtree.ASpreadMethod])

	if ga.kind == svgtree.ERadialGradient {
		ps.Kind = ServerRadialGradient
		ps.IsRadial = true
		ps.Cx = numOrDefault(ga.attrs[svgtree.ACx], 0.5)
		ps.Cy = numOrDefault(ga.attrs[svgtree.ACy], 0.5)
		ps.R = numOrDefault(ga.attrs[svgtree.AR], 0.5)
		if _, ok := ga.attrs[svgtree.AFx]; ok {
			ps.Fx = numOrDefault(ga.attrs[svgtree.AFx], ps.Cx)
		} else {
			ps.Fx = ps.Cx
		}
		if _, ok := ga.attrs[svgtree.AFy]; ok {
			ps.Fy = numOrDefault(ga.attrs[svgtree.AFy], ps.Cy)
		} else {
			ps.Fy = ps.Cy
		}
		// A focal point outside the circle is pulled back onto its edge
		//.
		dx, dy := ps.Fx-ps.Cx, ps.Fy-ps.Cy
		if d := math.Hypot(dx, dy); d > ps.R && d > 0 {
			scale := ps.R / d * 0.999
			ps.Fx, ps.Fy = ps.Cx+dx*scale, ps.Cy+dy*scale
		}
	} else {
		ps.Kind = ServerLinearGradient
		ps.X1 = numOrDefault(ga.attrs[svgtree.AX1], 0)
		ps.Y1 = numOrDefault(ga.attrs[svgtree.AY1], 0)
		ps.X2 = numOrDefault(ga.attrs[svgtree.AX2], 1)
		ps.Y2 = numOrDefault(ga.attrs[svgtree.AY2], 0)
	}

	ps.Stops = c.resolveStops(ga.stops)
	if len(ps.Stops) == 0 {
		// No usable stops: the gradient paints as if it were absent.
		// Callers fall back to none/fallback.4.
		return nil
	}
	c.servers[id] = ps
	return ps
}

// resolveStops normalizes a gradient's <stop> children: offsets clamp to
// [0,1], are forced monotonically non-decreasing (an out-of-order offset is
// bumped up by an epsilon rather than rejected), and a run of 3+ stops at
// the same offset is deduplicated to its first and last.
func (c *converter) resolveStops(ids []svgtree.NodeID) []GradientStop {
	var raw []GradientStop
	for _, sid := range ids {
		n := c.doc.Node(sid)
		offset := clamp01(n.Number(svgtree.AOffset, 0))
		col, _ := n.Color(svgtree.AStopColor)
		op := n.Number(svgtree.AFillOpacity, 1) // placeholder default, overwritten below
		if v, ok := n.Get(svgtree.AStopOpacity); ok {
			if f, ok2 := parseFloatOpacity(v); ok2 {
				op = f
			}
		} else {
			op = 1
		}
		raw = append(raw, GradientStop{Offset: offset, Color: col, Opacity: clamp01(op)})
	}
	if len(raw) == 0 {
		return nil
	}

	const eps = 1e-6
	for i := 1; i < len(raw); i++ {
		if raw[i].Offset < raw[i-1].Offset {
			raw[i].Offset = raw[i-1].Offset + eps
		}
	}

	out := raw[:0:0]
	i := 0
	for i < len(raw) {
		j := i
		for j+1 < len(raw) && raw[j+1].Offset == raw[i].Offset {
			j++
		}
		if j-i >= 2 {
			out = append(out, raw[i], raw[j])
		} else {
			out = append(out, raw[i:j+1]...)
		}
		i = j + 1
	}
	return out
}

func (c *converter) resolvePattern(id string, nid svgtree.NodeID) *PaintServer {
	n := c.doc.Node(nid)
	ps := &PaintServer{ID: id, Kind: ServerPattern}

	ps.Units = ParseUnits(n.Attrs[svgtree.APatternUnits], UnitsObjectBoundingBox)
	ps.ContentUnits = ParseUnits(n.Attrs[svgtree.APatternContentUnits], UnitsUserSpaceOnUse)
	if tv, ok := n.Get(svgtree.APatternTransform); ok {
		if t, err := svgtypes.ParseTransform(tv); err == nil {
			ps.Transform = t
		}
	} else {
		ps.Transform = svgtypes.Identity
	}
	ps.Rect = svgtypes.Rect{
		X: n.Number(svgtree.AX, 0), Y: n.Number(svgtree.AY, 0),
		W: n.Number(svgtree.AWidth, 0), H: n.Number(svgtree.AHeight, 0),
	}
	if vb, ok := n.Get(svgtree.AViewBox); ok {
		if v, ok := parseViewBox(vb, n); ok {
			ps.ViewBox = &v
		}
	}

	children := n.Children
	if len(children) == 0 {
		if href, ok := n.Get(svgtree.AHref); ok {
			if targetID := hrefID(href); targetID != "" {
				if target, ok := c.doc.ByID[targetID]; ok {
					children = c.doc.Node(target).Children
				}
			}
		}
	}
	if ps.Rect.W <= 0 || ps.Rect.H <= 0 {
		return nil
	}
	ps.Content = &Node{Kind: KindGroup, Opacity: 1, Transform: svgtypes.Identity, Children: c.convertChildren(children)}
	c.servers[id] = ps
	return ps
}

func parseSpreadMethod(s string) svgtypes.SpreadMethod {
	switch s {
	case "reflect":
		return svgtypes.SpreadReflect
	case "repeat":
		return svgtypes.SpreadRepeat
	default:
		return svgtypes.SpreadPad
	}
}

func numOrDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	l, err := svgtypes.ParseLength(s)
	if err != nil {
		return def
	}
	if l.Unit == svgtypes.UnitPercent {
		return l.Number / 100
	}
	return l.Number
}

func parseFloatOpacity(s string) (float64, bool) {
	l, err := svgtypes.ParseLength(s)
	if err != nil {
		return 0, false
	}
	if l.Unit == svgtypes.UnitPercent {
		return l.Number / 100, true
	}
	return l.Number, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseViewBox parses the `viewBox` attribute's 4 numbers and, if present,
// the node's own preserveAspectRatio.
func parseViewBox(s string, n *svgtree.Node) (svgtypes.ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return svgtypes.ViewBox{}, false
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return svgtypes.ViewBox{}, false
		}
		nums[i] = v
	}
	rect, ok := svgtypes.NewNonZeroRect(nums[0], nums[1], nums[2], nums[3])
	if !ok {
		return svgtypes.ViewBox{}, false
	}
	aspect := svgtypes.DefaultAspectRatio
	if av, ok := n.Get(svgtree.APreserveAspectRatio); ok {
		aspect = svgtypes.ParseAspectRatio(av)
	}
	return svgtypes.ViewBox{Rect: rect, Aspect: aspect}, true
}
