// Package svg is the public entry point: ParseTree runs the full pipeline
// (xmltree -> svgtree -> usvg) describes, and the Tree it returns
// wraps the raster package for rendering and usvg/bbox.go for metadata
// queries.
package svg

import (
	"image"
	"io"

	"github.com/pgavlin/svgrender/raster"
	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
	"github.com/pgavlin/svgrender/xmltree"
)

// Tree is a parsed, converted document ready to render or query. It wraps
// usvg.Tree (the render tree) and carries the non-fatal Warnings collected
// along the way.
type Tree struct {
	tree     *usvg.Tree
	Warnings []svgtree.Warning
}

// ParseTree runs the whole pipeline over r: tokenize and decompress if
// gzipped (xmltree.Parse/Decompress), build the SVG intermediate tree and
// resolve its CSS/switch/use/ids (svgtree.Parse), then convert it into a
// render tree (usvg.Convert). Errors from any stage are mapped onto this
// package's taxonomy (errors.go); local recoverable problems are returned as
// Tree.Warnings instead of failing the parse.
func ParseTree(r io.Reader, opts Options) (*Tree, error) {
	opts = opts.normalized()
	svgtree.PreferredLanguages = opts.languageList()

	doc, err := svgtree.Parse(r)
	if err != nil {
		return nil, mapParseError(err)
	}

	t, warnings, err := usvg.Convert(doc, usvg.Options{
		DPI:               opts.DPI,
		DefaultFontFamily: opts.FontFamily,
		DefaultFontSize:   opts.FontSize,
		DefaultWidth:      opts.DefaultSizeW,
		DefaultHeight:     opts.DefaultSizeH,
	})
	if err != nil {
		if err == usvg.ErrInvalidSize {
			return nil, ErrInvalidSize
		}
		return nil, err
	}

	shapeDefault := usvg.ParseRenderingHint(opts.ShapeRendering)
	imageDefault := usvg.ParseRenderingHint(opts.ImageRendering)
	applyRenderingDefaults(t.Root, shapeDefault, imageDefault)

	return &Tree{tree: t, Warnings: append(doc.Warnings, warnings...)}, nil
}

// mapParseError translates the handful of sentinel errors xmltree/svgtree
// can return into this package's taxonomy, and wraps anything else (a raw
// XML syntax error from encoding/xml) as a ParseError.
func mapParseError(err error) error {
	switch err {
	case svgtree.ErrNotAnUTF8Str:
		return ErrNotAnUTF8Str
	case svgtree.ErrNoSVGRoot:
		return ErrNoRootNode
	case xmltree.ErrMalformedGZip:
		return ErrMalformedGZip
	case xmltree.ErrElementsLimitReached:
		return ErrElementsLimitReached
	case xmltree.ErrNodesLimitReached:
		return ErrNodesLimitReached
	}
	return newParseError(err)
}

// applyRenderingDefaults fills in RenderingAuto hints left unset by the
// document with the document-level defaults from Options:
// an element's own shape-rendering/image-rendering attribute always wins,
// since usvg.Convert only ever sets RenderingAuto when the attribute was
// absent.
func applyRenderingDefaults(n *usvg.Node, shapeDefault, imageDefault usvg.RenderingHint) {
	if n == nil {
		return
	}
	switch n.Kind {
	case usvg.KindPath:
		if n.ShapeRendering == usvg.RenderingAuto {
			n.ShapeRendering = shapeDefault
		}
	case usvg.KindImage:
		if n.ImageRendering == usvg.RenderingAuto {
			n.ImageRendering = imageDefault
		}
	case usvg.KindGroup:
		for _, c := range n.Children {
			applyRenderingDefaults(c, shapeDefault, imageDefault)
		}
	}
}

// Render rasterizes the whole tree into img, placed by rootTransform
//.
func (t *Tree) Render(img *image.RGBA, rootTransform svgtypes.Transform, ropts raster.Options) error {
	return raster.Render(t.tree, img, rootTransform, ropts)
}

// RenderNode rasterizes only the subtree rooted at id, in isolation from its
// original document position.
func (t *Tree) RenderNode(id string, img *image.RGBA, rootTransform svgtypes.Transform, ropts raster.Options) error {
	return raster.RenderNode(t.tree, id, img, rootTransform, ropts)
}

// NodeByID returns the render-tree node with the given id, or nil.
func (t *Tree) NodeByID(id string) *usvg.Node {
	return t.tree.NodeByID(id)
}

// AllNodeIDs returns every id-bearing node's id, in no particular order
//.
func (t *Tree) AllNodeIDs() []string {
	return t.tree.AllNodeIDs()
}

// GetImageSize returns the tree's pixel dimensions.
func (t *Tree) GetImageSize() (float64, float64) {
	return t.tree.GetImageSize()
}

// GetImageViewBox returns the tree's resolved viewBox.
func (t *Tree) GetImageViewBox() svgtypes.ViewBox {
	return t.tree.GetImageViewBox()
}

// GetImageBBox returns the bounding box of the whole rendered drawing
//.
func (t *Tree) GetImageBBox() (svgtypes.Rect, bool) {
	return t.tree.GetImageBBox()
}

// GetNodeBBox returns id's geometric bounding box in root coordinates
//.
func (t *Tree) GetNodeBBox(id string) (svgtypes.Rect, bool) {
	return t.tree.GetNodeBBox(id)
}

// GetNodeStrokeBBox is GetNodeBBox inflated by the node's stroke width
//.
func (t *Tree) GetNodeStrokeBBox(id string) (svgtypes.Rect, bool) {
	return t.tree.GetNodeStrokeBBox(id)
}

// WriteSVG serializes the tree back to canonical SVG.
func (t *Tree) WriteSVG(w io.Writer) error {
	return t.tree.WriteSVG(w)
}

// Dump pretty-prints the render tree for debugging.
func (t *Tree) Dump(w io.Writer) {
	t.tree.Dump(w)
}
