// Package svgtree builds the SVG intermediate tree: a secondary parse over a
// generic XML tree (xmltree.Tree) that recognizes SVG elements and
// attributes, resolves CSS, applies inheritance, and breaks reference
// cycles.
package svgtree

import (
	"fmt"

	"github.com/pgavlin/svgrender/svgtypes"
)

// Severity is a warning's severity level.
type Severity int

const (
	SeverityWarn Severity = iota
	SeverityError
)

// Warning is a non-fatal, locally-recovered problem encountered while
// building or converting the tree.
type Warning struct {
	Message   string
	ElementID string
	Severity  Severity
}

// NodeID indexes into a Document's arena.
type NodeID int

// Node is one element of the SVG intermediate tree. Unlike xmltree.Node, its
// element and attribute names have already been resolved to the closed
// EId/AId enums, its attribute values carry final (post-cascade,
// post-inherit) string values, and it knows its source xmltree node for
// diagnostics.
type Node struct {
	EId      EId
	ID       string // the `id` attribute, empty if absent
	Attrs    map[AId]string
	Text     string
	Parent   NodeID
	Children []NodeID

	typed map[AId]any // lazily parsed cache, see Length/Color/Paint/etc below
}

// Document is the root of the SVG intermediate tree. Nodes are stored as
// pointers so that growing the arena (newNode, cloneSubtree) never
// invalidates a *Node obtained earlier in the same pass.
type Document struct {
	Nodes    []*Node
	Root     NodeID
	ByID     map[string]NodeID
	AllIDs   map[string]bool // every id seen in the source, for collision-free generation
	Warnings []Warning
}

func (d *Document) Node(id NodeID) *Node { return d.Nodes[id] }

func (d *Document) warn(elementID, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{
		Message:   fmt.Sprintf(format, args...),
		ElementID: elementID,
		Severity:  SeverityWarn,
	})
}

func (d *Document) newNode(eid EId) NodeID {
	id := NodeID(len(d.Nodes))
	d.Nodes = append(d.Nodes, &Node{EId: eid, Attrs: map[AId]string{}})
	return id
}

// Get returns the raw (post-cascade) string value of an attribute.
func (n *Node) Get(aid AId) (string, bool) {
	v, ok := n.Attrs[aid]
	return v, ok
}

func (n *Node) cache(aid AId, v any) any {
	if n.typed == nil {
		n.typed = map[AId]any{}
	}
	n.typed[aid] = v
	return v
}

// Length parses an attribute as a svgtypes.Length, caching the result.
func (n *Node) Length(aid AId) (svgtypes.Length, bool) {
	if c, ok := n.typed[aid]; ok {
		l, ok := c.(svgtypes.Length)
		return l, ok
	}
	s, ok := n.Get(aid)
	if !ok {
		return svgtypes.Length{}, false
	}
	l, err := svgtypes.ParseLength(s)
	if err != nil {
		return svgtypes.Length{}, false
	}
	n.cache(aid, l)
	return l, true
}

// Color parses an attribute as a svgtypes.Color.
func (n *Node) Color(aid AId) (svgtypes.Color, bool) {
	s, ok := n.Get(aid)
	if !ok {
		return svgtypes.Color{}, false
	}
	return svgtypes.ParseColor(s)
}

// Paint parses an attribute as a svgtypes.Paint (fill/stroke/flood/lighting).
func (n *Node) Paint(aid AId) (svgtypes.Paint, bool) {
	s, ok := n.Get(aid)
	if !ok {
		return svgtypes.Paint{}, false
	}
	return svgtypes.ParsePaint(s), true
}

// Transform parses an attribute as a svgtypes.Transform.
func (n *Node) Transform(aid AId) (svgtypes.Transform, bool) {
	if c, ok := n.typed[aid]; ok {
		t, ok := c.(svgtypes.Transform)
		return t, ok
	}
	s, ok := n.Get(aid)
	if !ok {
		return svgtypes.Identity, false
	}
	t, err := svgtypes.ParseTransform(s)
	if err != nil {
		return svgtypes.Identity, false
	}
	n.cache(aid, t)
	return t, true
}

// PathData parses the `d` attribute.
func (n *Node) PathData() (svgtypes.Path, bool) {
	if c, ok := n.typed[AD]; ok {
		p, ok := c.(svgtypes.Path)
		return p, ok
	}
	s, ok := n.Get(AD)
	if !ok {
		return svgtypes.Path{}, false
	}
	p := svgtypes.ParsePathData(s)
	n.cache(AD, p)
	return p, true
}

// Number parses an attribute as a bare float64.
func (n *Node) Number(aid AId, def float64) float64 {
	s, ok := n.Get(aid)
	if !ok {
		return def
	}
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		return def
	}
	return f
}
