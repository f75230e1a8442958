// Package usvg builds and serializes the render tree: the final,
// fully-resolved representation a rasterizer can walk without re-deriving
// anything from CSS, units, or references. Its converter consumes an
// *svgtree.Document (already CSS-resolved, cycle-broken, and use-expanded)
// and produces a Tree of these node types.
package usvg

import (
	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg/usvgtext"
)

type NodeKind int

const (
	KindGroup NodeKind = iota
	KindPath
	KindImage
	KindText
)

// Node is a single render-tree node. Only the fields relevant to Kind are
// populated; a single sum-style struct instead of an interface hierarchy,
// since every render-tree consumer (raster, the canonical writer, Dump)
// needs to switch on exactly these four kinds.
type Node struct {
	Kind      NodeKind
	ID        string
	Transform svgtypes.Transform
	Children  []*Node // Kind == KindGroup

	// Group-only.
	Opacity    float64
	ClipPath   *ClipPath
	Mask       *Mask
	Filters    []*Filter
	BlendMode  BlendMode
	Isolate    bool
	GroupAlias string // id of the svgtree element this group was synthesized for, if any

	// Path-only.
	PathData       svgtypes.Path
	Fill           *Fill
	Stroke         *Stroke
	PaintOrder     svgtypes.PaintOrder
	Visible        bool
	ShapeRendering RenderingHint

	// Image-only.
	ImageData      []byte
	ImageFormat    string
	ImageRect      svgtypes.Rect
	ImageRendering RenderingHint

	// Text-only; populated by usvgtext and consumed by raster as a set of
	// already-positioned, already-outlined glyph runs plus decoration.
	Text *usvgtext.Text
}

type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = map[string]BlendMode{
	"normal": BlendNormal, "multiply": BlendMultiply, "screen": BlendScreen,
	"overlay": BlendOverlay, "darken": BlendDarken, "lighten": BlendLighten,
	"color-dodge": BlendColorDodge, "color-burn": BlendColorBurn,
	"hard-light": BlendHardLight, "soft-light": BlendSoftLight,
	"difference": BlendDifference, "exclusion": BlendExclusion,
	"hue": BlendHue, "saturation": BlendSaturation, "color": BlendColor,
	"luminosity": BlendLuminosity,
}

func ParseBlendMode(s string) BlendMode {
	if m, ok := blendModeNames[s]; ok {
		return m
	}
	return BlendNormal
}

// RenderingHint mirrors the shape-rendering/text-rendering/image-rendering
// CSS properties: a rasterizer-facing quality/speed tradeoff
// hint carried on the render-tree node it applies to rather than resolved
// away, since it's the raster package's job to act on it.
type RenderingHint int

const (
	RenderingAuto RenderingHint = iota
	RenderingOptimizeSpeed
	RenderingCrispEdges
	RenderingGeometricPrecision
	RenderingOptimizeLegibility
	RenderingOptimizeQuality
)

func ParseRenderingHint(s string) RenderingHint {
	switch s {
	case "optimizeSpeed":
		return RenderingOptimizeSpeed
	case "crispEdges":
		return RenderingCrispEdges
	case "geometricPrecision":
		return RenderingGeometricPrecision
	case "optimizeLegibility":
		return RenderingOptimizeLegibility
	case "optimizeQuality":
		return RenderingOptimizeQuality
	default:
		return RenderingAuto
	}
}

// Tree is the root of a converted document.
type Tree struct {
	Root    *Node
	Width   float64
	Height  float64
	ViewBox svgtypes.ViewBox

	index map[string]indexEntry
}

type indexEntry struct {
	node  *Node
	world svgtypes.Transform
}

// ensureIndex builds (once, lazily) a flat id -> (node, world transform) map
// by walking the tree from the root, composing each node's own Transform
// onto its parent's world transform as it goes. This is the basis for
// NodeByID and the bbox queries: render-tree nodes only carry
// a transform relative to their parent, so answering "where does this node
// end up" requires replaying the ancestor chain once.
func (t *Tree) ensureIndex() {
	if t.index != nil {
		return
	}
	t.index = map[string]indexEntry{}
	var walk func(n *Node, parentWorld svgtypes.Transform)
	walk = func(n *Node, parentWorld svgtypes.Transform) {
		if n == nil {
			return
		}
		world := parentWorld.Multiply(n.Transform)
		if n.ID != "" {
			t.index[n.ID] = indexEntry{node: n, world: world}
		}
		for _, c := range n.Children {
			walk(c, world)
		}
	}
	walk(t.Root, svgtypes.Identity)
}

// NodeByID returns the render-tree node with the given id, or nil if id is
// empty or unknown.
func (t *Tree) NodeByID(id string) *Node {
	if id == "" {
		return nil
	}
	t.ensureIndex()
	return t.index[id].node
}

// AllNodeIDs returns every id-bearing node's id, in no particular order
//.
func (t *Tree) AllNodeIDs() []string {
	t.ensureIndex()
	ids := make([]string, 0, len(t.index))
	for id := range t.index {
		ids = append(ids, id)
	}
	return ids
}

// worldTransform returns the transform mapping id's own local coordinate
// space (the space its geometry/children are defined in, after its own
// Transform is applied) into the tree's root coordinate space.
func (t *Tree) worldTransform(id string) (svgtypes.Transform, bool) {
	if id == "" {
		return svgtypes.Identity, false
	}
	t.ensureIndex()
	e, ok := t.index[id]
	return e.world, ok
}
