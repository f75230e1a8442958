package usvg

import "github.com/pgavlin/svgrender/svgtypes"

// localBounds returns n's geometric bounds in its own local coordinate
// space (i.e. before n.Transform is applied), used as the base case for
// bbox accumulation.
func localBounds(n *Node) (svgtypes.Rect, bool) {
	switch n.Kind {
	case KindPath:
		if !n.PathData.Valid() {
			return svgtypes.Rect{}, false
		}
		return n.PathData.Bounds(), true
	case KindImage:
		if n.ImageRect.W <= 0 || n.ImageRect.H <= 0 {
			return svgtypes.Rect{}, false
		}
		return n.ImageRect, true
	case KindText:
		if n.Text == nil {
			return svgtypes.Rect{}, false
		}
		var out svgtypes.Rect
		found := false
		for _, chunk := range n.Text.Chunks {
			for _, run := range chunk.Runs {
				for _, g := range run.Glyphs {
					b := g.Outline.Bounds()
					b.X += g.X
					b.Y += g.Y
					out = out.Union(b)
					found = true
				}
			}
		}
		return out, found
	case KindGroup:
		var out svgtypes.Rect
		found := false
		for _, c := range n.Children {
			b, ok := localBounds(c)
			if !ok {
				continue
			}
			b = b.Transform(c.Transform)
			out = out.Union(b)
			found = true
		}
		return out, found
	}
	return svgtypes.Rect{}, false
}

// GetNodeBBox returns id's geometric bounding box in the tree's root
// coordinate system: the node's own local
// bounds (recursing through group children) transformed by every ancestor
// transform up to the root, including the node's own.
func (t *Tree) GetNodeBBox(id string) (svgtypes.Rect, bool) {
	t.ensureIndex()
	e, ok := t.index[id]
	if !ok {
		return svgtypes.Rect{}, false
	}
	b, ok := localBounds(e.node)
	if !ok {
		return svgtypes.Rect{}, false
	}
	return b.Transform(e.world), true
}

// GetNodeStrokeBBox is GetNodeBBox inflated by half the node's stroke width
//; this is a conservative
// approximation (it doesn't account for miter joins exceeding half the
// stroke width) rather than an exact stroke-outline bbox, matching the
// teacher's general preference for approximate-but-cheap geometry helpers
// over a full stroke-to-fill conversion (see DESIGN.md).
func (t *Tree) GetNodeStrokeBBox(id string) (svgtypes.Rect, bool) {
	t.ensureIndex()
	e, ok := t.index[id]
	if !ok {
		return svgtypes.Rect{}, false
	}
	b, ok := localBounds(e.node)
	if !ok {
		return svgtypes.Rect{}, false
	}
	if e.node.Kind == KindPath && e.node.Stroke != nil {
		half := e.node.Stroke.Width / 2
		b.X -= half
		b.Y -= half
		b.W += half * 2
		b.H += half * 2
	}
	return b.Transform(e.world), true
}

// GetImageBBox returns the bounding box of the whole rendered drawing
//.
func (t *Tree) GetImageBBox() (svgtypes.Rect, bool) {
	if t.Root == nil {
		return svgtypes.Rect{}, false
	}
	b, ok := localBounds(t.Root)
	if !ok {
		return svgtypes.Rect{}, false
	}
	return b.Transform(t.Root.Transform), true
}

// GetImageSize returns the tree's pixel dimensions.
func (t *Tree) GetImageSize() (float64, float64) {
	return t.Width, t.Height
}

// GetImageViewBox returns the tree's resolved viewBox.
func (t *Tree) GetImageViewBox() svgtypes.ViewBox {
	return t.ViewBox
}
