package usvg

import (
	"errors"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

// ErrInvalidSize is returned by Convert when the root <svg> has width/height
// <= 0, or neither width, height, nor viewBox is set.
var ErrInvalidSize = errors.New("usvg: invalid root <svg> size")

// Options configures a conversion, mirroring the subset of resvg's usvg
// Options this pipeline exposes: dpi/font-size are consumed here;
// DefaultFontFamily is carried but not read (text with no font-family uses
// sans-serif). The document's own <style> sheets are applied earlier, at
// svgtree.Parse time, and the resources dir is an option of the raster
// package.
type Options struct {
	DPI               float64
	DefaultFontFamily string
	DefaultFontSize   float64

	// DefaultWidth/DefaultHeight are the viewport fallback used to resolve
	// percentage width/height on the root <svg> when there is no viewBox to
	// fall back to directly.
	DefaultWidth  float64
	DefaultHeight float64
}

func DefaultOptions() Options {
	return Options{
		DPI: 96, DefaultFontFamily: "sans-serif", DefaultFontSize: 16,
		DefaultWidth: 100, DefaultHeight: 100,
	}
}

// Convert turns a resolved svgtree.Document into a render Tree.
func Convert(doc *svgtree.Document, opts Options) (*Tree, []svgtree.Warning, error) {
	root := doc.Node(doc.Root)

	defaultW, defaultH := opts.DefaultWidth, opts.DefaultHeight
	if defaultW <= 0 {
		defaultW = 100
	}
	if defaultH <= 0 {
		defaultH = 100
	}

	_, hasWidthAttr := root.Get(svgtree.AWidth)
	_, hasHeightAttr := root.Get(svgtree.AHeight)
	vb, hasViewBox := root.Get(svgtree.AViewBox)
	if !hasWidthAttr && !hasHeightAttr && !hasViewBox {
		return nil, nil, ErrInvalidSize
	}

	var viewBox svgtypes.ViewBox
	viewBoxOK := false
	if hasViewBox {
		if v, ok := parseViewBox(vb, root); ok {
			viewBox, viewBoxOK = v, true
		}
	}

	fallbackState := svgtypes.ResolverState{DPI: opts.DPI, FontSize: opts.DefaultFontSize, ViewportW: defaultW, ViewportH: defaultH}

	width := resolveRootDimension(root, svgtree.AWidth, svgtypes.AxisX, hasWidthAttr, viewBoxOK, viewBox.Rect.Rect.W, defaultW, fallbackState)
	height := resolveRootDimension(root, svgtree.AHeight, svgtypes.AxisY, hasHeightAttr, viewBoxOK, viewBox.Rect.Rect.H, defaultH, fallbackState)
	if width <= 0 || height <= 0 {
		return nil, nil, ErrInvalidSize
	}

	if !viewBoxOK {
		viewBox = defaultViewBox(width, height)
	}

	c := newConverter(doc, svgtypes.ResolverState{
		DPI: opts.DPI, FontSize: opts.DefaultFontSize,
		ViewportW: viewBox.Rect.Rect.W, ViewportH: viewBox.Rect.Rect.H,
	})

	rootGroup := &Node{
		Kind:      KindGroup,
		Opacity:   1,
		Transform: svgtypes.ViewBoxTransform(viewBox, svgtypes.Rect{W: width, H: height}),
		Children:  c.convertChildren(root.Children),
	}

	return &Tree{Root: rootGroup, Width: width, Height: height, ViewBox: viewBox}, c.warn, nil
}

// resolveRootDimension implements sizing precedence: an
// explicit width/height attribute always wins (resolved against the
// default-size viewport, since the root element has no container of its
// own); absent that, a valid viewBox supplies the dimension directly;
// absent both, the default-size viewport's dimension is used verbatim.
func resolveRootDimension(root *svgtree.Node, aid svgtree.AId, axis svgtypes.Axis, hasAttr, viewBoxOK bool, viewBoxDim, fallbackDim float64, state svgtypes.ResolverState) float64 {
	if hasAttr {
		l, _ := root.Length(aid)
		return svgtypes.Resolve(l, axis, state)
	}
	if viewBoxOK {
		return viewBoxDim
	}
	return fallbackDim
}

func defaultViewBox(w, h float64) svgtypes.ViewBox {
	rect, _ := svgtypes.NewNonZeroRect(0, 0, w, h)
	return svgtypes.ViewBox{Rect: rect, Aspect: svgtypes.DefaultAspectRatio}
}

// convertChildren converts each svgtree child into zero or one render node,
// skipping elements that are never directly rendered (defs, markers,
// gradients, patterns, clipPath/mask/filter definitions — all consumed by
// reference, not by position in the tree) and display:none subtrees.
func (c *converter) convertChildren(ids []svgtree.NodeID) []*Node {
	var out []*Node
	for _, nid := range ids {
		if n := c.convertNode(nid); n != nil {
			out = append(out, n)
		}
	}
	return out
}

var nonRenderingKinds = map[svgtree.EId]bool{
	svgtree.EDefs: true, svgtree.ESymbol: true, svgtree.EMarker: true,
	svgtree.ELinearGradient: true, svgtree.ERadialGradient: true, svgtree.EPattern: true,
	svgtree.EStop: true, svgtree.EClipPath: true, svgtree.EMask: true, svgtree.EFilter: true,
	svgtree.EStyle: true,
}

func (c *converter) convertNode(nid svgtree.NodeID) *Node {
	n := c.doc.Node(nid)
	if nonRenderingKinds[n.EId] {
		return nil
	}
	if v, ok := n.Get(svgtree.ADisplay); ok && v == "none" {
		return nil
	}
	if isFilterPrimitiveKind(n.EId) {
		return nil
	}

	if svgtree.IsShapeElement(n.EId) {
		return c.convertShape(n)
	}
	if n.EId == svgtree.EG || n.EId == svgtree.ESvg {
		return c.convertGroup(n)
	}
	if n.EId == svgtree.EImage {
		return c.convertImage(n)
	}
	if n.EId == svgtree.EText {
		return c.convertText(n)
	}
	return nil
}

func isFilterPrimitiveKind(eid svgtree.EId) bool {
	switch eid {
	case svgtree.EFeBlend, svgtree.EFeColorMatrix, svgtree.EFeComponentTransfer,
		svgtree.EFeComposite, svgtree.EFeConvolveMatrix, svgtree.EFeDiffuseLighting,
		svgtree.EFeDisplacementMap, svgtree.EFeDropShadow, svgtree.EFeFlood,
		svgtree.EFeFuncR, svgtree.EFeFuncG, svgtree.EFeFuncB, svgtree.EFeFuncA,
		svgtree.EFeGaussianBlur, svgtree.EFeImage, svgtree.EFeMerge,
		svgtree.EFeMergeNode, svgtree.EFeMorphology, svgtree.EFeOffset,
		svgtree.EFeSpecularLighting, svgtree.EFeTile, svgtree.EFeTurbulence:
		return true
	}
	return false
}

func (c *converter) convertGroup(n *svgtree.Node) *Node {
	g := &Node{Kind: KindGroup, Opacity: 1, Transform: svgtypes.Identity}
	if !c.applyGroupStyle(n, g) {
		return nil
	}

	var children []svgtree.NodeID
	for _, cid := range n.Children {
		children = append(children, cid)
	}

	if n.EId == svgtree.ESvg {
		if !c.applyNestedViewport(n, g) {
			return nil
		}
		saved := c.st
		c.st.ViewportW, c.st.ViewportH = nestedViewport(n, c.st)
		g.Children = c.convertChildren(children)
		c.st = saved
		return g
	}

	g.Children = c.convertChildren(children)
	if len(g.Children) == 0 && g.isDefault() {
		return nil
	}
	return g
}

// isDefault reports whether g carries none of the attributes that would
// make removing it change rendering (§3.3: "Groups with default attributes
// and no children are pruned").
func (g *Node) isDefault() bool {
	return g.Opacity == 1 && g.ClipPath == nil && g.Mask == nil && len(g.Filters) == 0 &&
		g.BlendMode == BlendNormal && !g.Isolate && g.Transform == svgtypes.Identity && g.ID == ""
}

// nestedViewport resolves the viewport dimensions that a nested <svg>'s
// viewBox (if any) establishes for its descendants' percentage/em lengths;
// without a viewBox, descendants still resolve against the svg's own
// width/height.1.
func nestedViewport(n *svgtree.Node, st svgtypes.ResolverState) (float64, float64) {
	w := resolveLen(n, svgtree.AWidth, svgtypes.AxisX, st)
	h := resolveLen(n, svgtree.AHeight, svgtypes.AxisY, st)
	if vb, ok := n.Get(svgtree.AViewBox); ok {
		if viewBox, ok := parseViewBox(vb, n); ok {
			return viewBox.Rect.Rect.W, viewBox.Rect.Rect.H
		}
	}
	return w, h
}

// applyNestedViewport folds a nested <svg>'s own x/y/width/height/viewBox
// into the group synthesized for it: it establishes a new coordinate system
// for its descendants and clips content to its viewport rect, treating a
// nested <svg> as a restricted group plus a clip rect. It reports false if
// the viewport collapses (width/height <= 0), in which case the whole
// element should be dropped.
func (c *converter) applyNestedViewport(n *svgtree.Node, g *Node) bool {
	x := resolveLen(n, svgtree.AX, svgtypes.AxisX, c.st)
	y := resolveLen(n, svgtree.AY, svgtypes.AxisY, c.st)
	w := resolveLen(n, svgtree.AWidth, svgtypes.AxisX, c.st)
	h := resolveLen(n, svgtree.AHeight, svgtypes.AxisY, c.st)
	if _, ok := n.Get(svgtree.AWidth); !ok {
		w = c.st.ViewportW
	}
	if _, ok := n.Get(svgtree.AHeight); !ok {
		h = c.st.ViewportH
	}
	if w <= 0 || h <= 0 {
		return false
	}

	// clipRect is expressed in the coordinate system g's children will
	// actually be drawn in (the render pipeline composes g.Transform into
	// `world` before drawing both children and clip geometry), so with a
	// viewBox it must be the viewBox's own rect, not the outer pixel rect.
	clipRect := svgtypes.Rect{W: w, H: h}
	nested := g.Transform.Multiply(svgtypes.Translate(x, y))
	if vb, ok := n.Get(svgtree.AViewBox); ok {
		if viewBox, ok := parseViewBox(vb, n); ok {
			nested = nested.Multiply(svgtypes.ViewBoxTransform(viewBox, svgtypes.Rect{W: w, H: h}))
			clipRect = viewBox.Rect.Rect
		}
	}
	g.Transform = nested
	g.ClipPath = &ClipPath{
		ID:        c.genID("clipPath"),
		Units:     UnitsUserSpaceOnUse,
		Transform: svgtypes.Identity,
		Children:  []*Node{rectClipShape(clipRect)},
	}
	return true
}

func rectClipShape(r svgtypes.Rect) *Node {
	var p svgtypes.Path
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.W, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
	return &Node{
		Kind: KindPath, Transform: svgtypes.Identity, Visible: true, PathData: p,
		Fill: &Fill{Paint: Paint{Kind: PaintColor}, Opacity: 1, Rule: svgtypes.FillRuleNonZero},
	}
}

// applyGroupStyle reads opacity/transform/clip-path/mask/filter/blend onto
// an already-allocated group node, and reports whether the element still
// belongs in the render tree: a filter attribute naming a reference the
// filter cache can't resolve drops the whole element, unlike an unresolvable clip-path/mask, which just resolves to no
// clip/mask.
func (c *converter) applyGroupStyle(n *svgtree.Node, g *Node) bool {
	g.Opacity = n.Number(svgtree.AOpacity, 1)
	if t, ok := n.Transform(svgtree.ATransform); ok {
		g.Transform = t
	}
	if v, ok := n.Get(svgtree.AClipPath); ok {
		g.ClipPath = c.resolveClipPath(v)
	}
	if v, ok := n.Get(svgtree.AMask); ok {
		g.Mask = c.resolveMask(v)
	}
	if v, ok := n.Get(svgtree.AFilter); ok {
		f := c.resolveFilter(v)
		if f == nil {
			c.warnf(n.ID, "filter reference %q does not resolve, dropping element", v)
			return false
		}
		g.Filters = []*Filter{f}
	}
	if v, ok := n.Get(svgtree.ABlendMode); ok {
		g.BlendMode = ParseBlendMode(v)
	}
	if v, ok := n.Get(svgtree.AIsolation); ok {
		g.Isolate = v == "isolate"
	}
	if n.ID != "" {
		g.ID = n.ID
	}
	return true
}

func (c *converter) convertShape(n *svgtree.Node) *Node {
	path, ok := shapeToPath(n, c.st)
	if !ok || !path.Valid() {
		return nil
	}

	shape := &Node{Kind: KindPath, Transform: svgtypes.Identity, ID: n.ID, Visible: true, PathData: path}
	if t, ok := n.Transform(svgtree.ATransform); ok {
		shape.Transform = t
	}
	shape.Fill = c.resolveFill(n)
	shape.Stroke = c.resolveStroke(n)
	shape.PaintOrder = parsePaintOrder(n)
	if v, ok := n.Get(svgtree.AVisibility); ok && v != "visible" {
		shape.Visible = false
	}
	if v, ok := n.Get(svgtree.AShapeRendering); ok {
		shape.ShapeRendering = ParseRenderingHint(v)
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
	if v, ok := n.Get(svgtree.ABlendMode); ok && ParseBlendMode(v) != BlendNormal {
		need.blend = ParseBlendMode(v)
	}

	strokeWidth := 1.0
	if shape.Stroke != nil {
		strokeWidth = shape.Stroke.Width
	}
	withMarkers := c.instantiateMarkers(n, path, strokeWidth)

	if !need.required() && len(withMarkers) == 0 {
		return shape
	}

	g := &Node{Kind: KindGroup, Transform: shape.Transform, Opacity: 1}
	c.applyGroupStyle(n, g)
	shape.Transform = svgtypes.Identity
	g.Children = append([]*Node{shape}, withMarkers...)
	return g
}

func (c *converter) convertImage(n *svgtree.Node) *Node {
	href, ok := n.Get(svgtree.AHref)
	if !ok {
		return nil
	}
	data, format, ok := decodeImageHref(href)
	if !ok {
		return nil
	}
	img := &Node{
		Kind:        KindImage,
		ID:          n.ID,
		Transform:   svgtypes.Identity,
		Visible:     true,
		ImageData:   data,
		ImageFormat: format,
		ImageRect: svgtypes.Rect{
			X: n.Number(svgtree.AX, 0), Y: n.Number(svgtree.AY, 0),
			W: n.Number(svgtree.AWidth, 0), H: n.Number(svgtree.AHeight, 0),
		},
	}
	if t, ok := n.Transform(svgtree.ATransform); ok {
		img.Transform = t
	}
	if v, ok := n.Get(svgtree.AVisibility); ok && v != "visible" {
		img.Visible = false
	}
	if v, ok := n.Get(svgtree.AImageRendering); ok {
		img.ImageRendering = ParseRenderingHint(v)
	}
	return img
}

func parsePaintOrder(n *svgtree.Node) svgtypes.PaintOrder {
	v, ok := n.Get(svgtree.APaintOrder)
	if !ok {
		return svgtypes.PaintOrderFillStrokeMarkers
	}
	switch v {
	case "stroke", "stroke fill", "stroke fill markers", "stroke markers fill":
		return svgtypes.PaintOrderStrokeFillMarkers
	case "markers", "markers fill stroke", "markers stroke fill":
		return svgtypes.PaintOrderMarkersFirst
	default:
		return svgtypes.PaintOrderFillStrokeMarkers
	}
}
