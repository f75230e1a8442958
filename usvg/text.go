package usvg

import (
	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg/usvgtext"
)

// convertText shapes a <text> element via usvgtext.Shape and finishes the
// paint resolution usvgtext.RunPaint deliberately leaves undone: a paint-
// server reference on a run's fill/stroke (text-fill="url(#grad)") can't be
// resolved inside usvgtext without an import cycle back to this package, so
// it arrives as an unresolved RunPaint.ServerRef and gets collapsed here to
// a representative solid color (the paint server's middle stop) rather than
// an actual gradient fill — a scope reduction recorded in DESIGN.md.
func (c *converter) convertText(n *svgtree.Node) *Node {
	text := usvgtext.Shape(c.doc, n, c.fonts, c.st)
	if text == nil || len(text.Chunks) == 0 {
		return nil
	}
	for ci := range text.Chunks {
		for ri := range text.Chunks[ci].Runs {
			run := &text.Chunks[ci].Runs[ri]
			c.resolveRunPaint(run.Fill)
			c.resolveRunPaint(run.Stroke)
		}
	}

	t := &Node{Kind: KindText, ID: n.ID, Transform: svgtypes.Identity, Visible: true, Text: text}
	if tr, ok := n.Transform(svgtree.ATransform); ok {
		t.Transform = tr
	}
	if v, ok := n.Get(svgtree.AVisibility); ok && v != "visible" {
		t.Visible = false
	}

	need := groupNeed{opacity: n.Number(svgtree.AOpacity, 1)}
	if _, ok := n.Get(svgtree.AClipPath); ok {
		need.hasClip = true
	}
	if _, ok := n.Get(svgtree.AMask); ok {
		need.hasMask = true
	}
	if _, ok := n.Get(svgtree.AFilter); ok {
		need.hasFilter = true
	}
	if !need.required() {
		return t
	}

	g := &Node{Kind: KindGroup, Transform: t.Transform, Opacity: 1}
	c.applyGroupStyle(n, g)
	t.Transform = svgtypes.Identity
	g.Children = []*Node{t}
	return g
}

func (c *converter) resolveRunPaint(rp *usvgtext.RunPaint) {
	if rp == nil || rp.Kind != 2 {
		return
	}
	if ps := c.resolvePaintServer(rp.ServerRef); ps != nil && len(ps.Stops) > 0 {
		mid := ps.Stops[len(ps.Stops)/2]
		rp.Kind = 1
		rp.ColorR, rp.ColorG, rp.ColorB = mid.Color.R, mid.Color.G, mid.Color.B
		return
	}
	rp.Kind = 0
}
