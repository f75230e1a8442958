package usvg

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pgavlin/svgrender/svgtypes"
)

// Dump writes a structural dump of the tree to w for debugging. It's
// reachable from the CLI's --perf path rather than from the normal
// render/serialize surface.
func (t *Tree) Dump(w io.Writer) {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true}
	cfg.Fdump(w, t)
}

// WriteSVG serializes t back to a canonical SVG document: no CSS, no style
// attributes, no `inherit`, no currentColor, no shorthands, every length in
// absolute user-space units, and paint-server ids generated where the
// source lacked one.
func (t *Tree) WriteSVG(w io.Writer) error {
	sw := &svgWriter{w: w}
	sw.writeHeader(t)

	servers := collectPaintServers(t.Root, map[string]*PaintServer{})
	clips, masks, filters := map[string]*ClipPath{}, map[string]*Mask{}, map[string]*Filter{}
	collectDefs(t.Root, clips, masks, filters)
	for _, ps := range servers {
		if ps.Kind == ServerPattern && ps.Content != nil {
			collectDefs(ps.Content, clips, masks, filters)
		}
	}
	if len(servers) > 0 || len(clips) > 0 || len(masks) > 0 || len(filters) > 0 {
		sw.printf("<defs>\n")
		for _, id := range sortedKeys(servers) {
			sw.writePaintServer(servers[id])
		}
		for _, id := range sortedClipKeys(clips) {
			sw.writeClipPath(clips[id])
		}
		for _, id := range sortedMaskKeys(masks) {
			sw.writeMask(masks[id])
		}
		for _, id := range sortedFilterKeys(filters) {
			sw.writeFilter(filters[id])
		}
		sw.printf("</defs>\n")
	}

	sw.writeNode(t.Root, true)
	sw.printf("</svg>\n")
	return sw.err
}

type svgWriter struct {
	w   io.Writer
	err error
}

func (sw *svgWriter) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

func (sw *svgWriter) writeHeader(t *Tree) {
	sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		fnum(t.Width), fnum(t.Height),
		fnum(t.ViewBox.Rect.X), fnum(t.ViewBox.Rect.Y), fnum(t.ViewBox.Rect.W), fnum(t.ViewBox.Rect.H))
}

// collectPaintServers walks the tree gathering every PaintServer reachable
// from a Fill/Stroke, keyed by id, so the writer can emit one flat <defs>
// block regardless of how deeply nested the referencing node is.
func collectPaintServers(n *Node, out map[string]*PaintServer) map[string]*PaintServer {
	if n == nil {
		return out
	}
	addPaint := func(p *Paint) {
		if p != nil && p.Kind == PaintServerRef && p.Server != nil {
			out[p.Server.ID] = p.Server
		}
	}
	if n.Fill != nil {
		addPaint(&n.Fill.Paint)
	}
	if n.Stroke != nil {
		addPaint(&n.Stroke.Paint)
	}
	for _, c := range n.Children {
		collectPaintServers(c, out)
	}
	return out
}

func sortedKeys(m map[string]*PaintServer) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sortStrings(keys)
}

func sortedClipKeys(m map[string]*ClipPath) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sortStrings(keys)
}

func sortedMaskKeys(m map[string]*Mask) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sortStrings(keys)
}

func sortedFilterKeys(m map[string]*Filter) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sortStrings(keys)
}

func sortStrings(keys []string) []string {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// collectDefs walks n gathering every ClipPath/Mask/Filter referenced from it
// or its descendants (including each ClipPath's/Mask's own nested
// ClipPath/Mask), so WriteSVG can emit them as <defs> children regardless of
// nesting depth. Mirrors collectPaintServers for the other three def kinds.
func collectDefs(n *Node, clips map[string]*ClipPath, masks map[string]*Mask, filters map[string]*Filter) {
	if n == nil {
		return
	}
	if n.ClipPath != nil {
		collectClipPath(n.ClipPath, clips, masks, filters)
	}
	if n.Mask != nil {
		collectMask(n.Mask, clips, masks, filters)
	}
	for _, f := range n.Filters {
		if f != nil {
			filters[f.ID] = f
		}
	}
	for _, c := range n.Children {
		collectDefs(c, clips, masks, filters)
	}
}

func collectClipPath(cp *ClipPath, clips map[string]*ClipPath, masks map[string]*Mask, filters map[string]*Filter) {
	if cp == nil || clips[cp.ID] != nil {
		return
	}
	clips[cp.ID] = cp
	for _, c := range cp.Children {
		collectDefs(c, clips, masks, filters)
	}
	collectClipPath(cp.ClipPath, clips, masks, filters)
}

func collectMask(m *Mask, clips map[string]*ClipPath, masks map[string]*Mask, filters map[string]*Filter) {
	if m == nil || masks[m.ID] != nil {
		return
	}
	masks[m.ID] = m
	for _, c := range m.Children {
		collectDefs(c, clips, masks, filters)
	}
	collectMask(m.Mask, clips, masks, filters)
}

func (sw *svgWriter) writePaintServer(ps *PaintServer) {
	switch ps.Kind {
	case ServerLinearGradient:
		sw.printf(`<linearGradient id="%s" gradientUnits="%s" x1="%s" y1="%s" x2="%s" y2="%s" gradientTransform="%s" spreadMethod="%s">`+"\n",
			ps.ID, unitsAttr(ps.Units), fnum(ps.X1), fnum(ps.Y1), fnum(ps.X2), fnum(ps.Y2), matrixAttr(ps.Transform), spreadAttr(ps.Spread))
		sw.writeStops(ps.Stops)
		sw.printf("</linearGradient>\n")
	case ServerRadialGradient:
		sw.printf(`<radialGradient id="%s" gradientUnits="%s" cx="%s" cy="%s" r="%s" fx="%s" fy="%s" gradientTransform="%s" spreadMethod="%s">`+"\n",
			ps.ID, unitsAttr(ps.Units), fnum(ps.Cx), fnum(ps.Cy), fnum(ps.R), fnum(ps.Fx), fnum(ps.Fy), matrixAttr(ps.Transform), spreadAttr(ps.Spread))
		sw.writeStops(ps.Stops)
		sw.printf("</radialGradient>\n")
	case ServerPattern:
		sw.printf(`<pattern id="%s" patternUnits="%s" x="%s" y="%s" width="%s" height="%s" patternTransform="%s">`+"\n",
			ps.ID, unitsAttr(ps.Units), fnum(ps.Rect.X), fnum(ps.Rect.Y), fnum(ps.Rect.W), fnum(ps.Rect.H), matrixAttr(ps.Transform))
		if ps.Content != nil {
			sw.writeNode(ps.Content, false)
		}
		sw.printf("</pattern>\n")
	}
}

func (sw *svgWriter) writeClipPath(cp *ClipPath) {
	attrs := ""
	if cp.ClipPath != nil {
		attrs = fmt.Sprintf(` clip-path="url(#%s)"`, cp.ClipPath.ID)
	}
	sw.printf(`<clipPath id="%s" clipPathUnits="%s" transform="%s"%s>`+"\n",
		cp.ID, unitsAttr(cp.Units), matrixAttr(cp.Transform), attrs)
	for _, c := range cp.Children {
		sw.writeNode(c, false)
	}
	sw.printf("</clipPath>\n")
}

func (sw *svgWriter) writeMask(m *Mask) {
	attrs := ""
	if m.Mask != nil {
		attrs = fmt.Sprintf(` mask="url(#%s)"`, m.Mask.ID)
	}
	kind := "luminance"
	if !m.Luminance {
		kind = "alpha"
	}
	sw.printf(`<mask id="%s" maskUnits="%s" maskContentUnits="%s" mask-type="%s" x="%s" y="%s" width="%s" height="%s"%s>`+"\n",
		m.ID, unitsAttr(m.Units), unitsAttr(m.ContentUnits), kind,
		fnum(m.Region.X), fnum(m.Region.Y), fnum(m.Region.W), fnum(m.Region.H), attrs)
	for _, c := range m.Children {
		sw.writeNode(c, false)
	}
	sw.printf("</mask>\n")
}

func (sw *svgWriter) writeFilter(f *Filter) {
	sw.printf(`<filter id="%s" filterUnits="%s" primitiveUnits="%s" x="%s" y="%s" width="%s" height="%s">`+"\n",
		f.ID, unitsAttr(f.Units), unitsAttr(f.PrimitiveUnits),
		fnum(f.Region.X), fnum(f.Region.Y), fnum(f.Region.W), fnum(f.Region.H))
	for _, p := range f.Primitives {
		sw.writeFilterPrimitive(p, f.ColorInterp)
	}
	sw.printf("</filter>\n")
}

func (sw *svgWriter) writeFilterPrimitive(p FilterPrimitive, ci ColorInterpolation) {
	var b strings.Builder
	if p.In != "" {
		fmt.Fprintf(&b, ` in="%s"`, p.In)
	}
	if p.In2 != "" {
		fmt.Fprintf(&b, ` in2="%s"`, p.In2)
	}
	if p.Result != "" {
		fmt.Fprintf(&b, ` result="%s"`, p.Result)
	}
	if p.HasRegion {
		fmt.Fprintf(&b, ` x="%s" y="%s" width="%s" height="%s"`,
			fnum(p.Subregion.X), fnum(p.Subregion.Y), fnum(p.Subregion.W), fnum(p.Subregion.H))
	}
	if ci == ColorInterpSRGB {
		b.WriteString(` color-interpolation-filters="sRGB"`)
	}
	for _, k := range sortStrings(paramKeys(p.Params)) {
		fmt.Fprintf(&b, ` %s="%s"`, k, p.Params[k])
	}
	sw.printf("<%s%s/>\n", p.Kind, b.String())
}

func paramKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (sw *svgWriter) writeStops(stops []GradientStop) {
	for _, s := range stops {
		sw.printf(`<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n", fnum(s.Offset), s.Color.String(), fnum(s.Opacity))
	}
}

func (sw *svgWriter) writeNode(n *Node, isRoot bool) {
	switch n.Kind {
	case KindGroup:
		if isRoot {
			for _, c := range n.Children {
				sw.writeNode(c, false)
			}
			return
		}
		sw.printf(`<g%s%s>`+"\n", idAttr(n.ID), groupAttrs(n))
		for _, c := range n.Children {
			sw.writeNode(c, false)
		}
		sw.printf("</g>\n")
	case KindPath:
		sw.printf(`<path%s transform="%s"%s d="%s"/>`+"\n", idAttr(n.ID), matrixAttr(n.Transform), pathStyleAttrs(n), pathData(n.PathData))
	case KindImage:
		sw.printf(`<image%s transform="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			idAttr(n.ID), matrixAttr(n.Transform), fnum(n.ImageRect.X), fnum(n.ImageRect.Y), fnum(n.ImageRect.W), fnum(n.ImageRect.H))
	case KindText:
		// Shaped text serializes as its outlined glyph paths; this
		// writer emits only the geometric half of that invariant and skips
		// the accessibility-text side channel, a scope reduction noted in
		// DESIGN.md.
		sw.printf(`<g%s transform="%s">`+"\n", idAttr(n.ID), matrixAttr(n.Transform))
		for _, chunk := range n.Text.Chunks {
			for _, run := range chunk.Runs {
				for _, g := range run.Glyphs {
					sw.printf(`<path transform="translate(%s %s)" d="%s"/>`+"\n", fnum(g.X), fnum(g.Y), pathData(g.Outline))
				}
			}
		}
		sw.printf("</g>\n")
	}
}

func groupAttrs(n *Node) string {
	var b strings.Builder
	if n.Opacity != 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, fnum(n.Opacity))
	}
	if n.Transform != svgtypes.Identity {
		fmt.Fprintf(&b, ` transform="%s"`, matrixAttr(n.Transform))
	}
	if n.ClipPath != nil {
		fmt.Fprintf(&b, ` clip-path="url(#%s)"`, n.ClipPath.ID)
	}
	if n.Mask != nil {
		fmt.Fprintf(&b, ` mask="url(#%s)"`, n.Mask.ID)
	}
	if len(n.Filters) > 0 {
		fmt.Fprintf(&b, ` filter="url(#%s)"`, n.Filters[0].ID)
	}
	return b.String()
}

func pathStyleAttrs(n *Node) string {
	var b strings.Builder
	if n.Fill != nil {
		fmt.Fprintf(&b, ` fill="%s" fill-opacity="%s"`, paintAttr(n.Fill.Paint), fnum(n.Fill.Opacity))
		if n.Fill.Rule == svgtypes.FillRuleEvenOdd {
			b.WriteString(` fill-rule="evenodd"`)
		}
	} else {
		b.WriteString(` fill="none"`)
	}
	if n.Stroke != nil {
		fmt.Fprintf(&b, ` stroke="%s" stroke-opacity="%s" stroke-width="%s"`, paintAttr(n.Stroke.Paint), fnum(n.Stroke.Opacity), fnum(n.Stroke.Width))
	}
	if !n.Visible {
		b.WriteString(` visibility="hidden"`)
	}
	return b.String()
}

func paintAttr(p Paint) string {
	switch p.Kind {
	case PaintColor:
		return p.Color.String()
	case PaintServerRef:
		return fmt.Sprintf("url(#%s)", p.Server.ID)
	default:
		return "none"
	}
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(` id="%s"`, id)
}

func unitsAttr(u Units) string {
	if u == UnitsUserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "objectBoundingBox"
}

func spreadAttr(s svgtypes.SpreadMethod) string {
	switch s {
	case svgtypes.SpreadReflect:
		return "reflect"
	case svgtypes.SpreadRepeat:
		return "repeat"
	default:
		return "pad"
	}
}

func matrixAttr(t svgtypes.Transform) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)", fnum(t.A), fnum(t.B), fnum(t.C), fnum(t.D), fnum(t.E), fnum(t.F))
}

func pathData(p svgtypes.Path) string {
	var b strings.Builder
	for _, s := range p.Segments {
		switch s.Kind {
		case svgtypes.SegMoveTo:
			fmt.Fprintf(&b, "M %s %s ", fnum(s.X), fnum(s.Y))
		case svgtypes.SegLineTo:
			fmt.Fprintf(&b, "L %s %s ", fnum(s.X), fnum(s.Y))
		case svgtypes.SegCubicTo:
			fmt.Fprintf(&b, "C %s %s %s %s %s %s ", fnum(s.X1), fnum(s.Y1), fnum(s.X2), fnum(s.Y2), fnum(s.X), fnum(s.Y))
		case svgtypes.SegClose:
			b.WriteString("Z ")
		}
	}
	return strings.TrimSpace(b.String())
}

func fnum(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
