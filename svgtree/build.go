package svgtree

import (
	"github.com/pgavlin/svgrender/xmltree"
)

const (
	nsSVG   = "http://www.w3.org/2000/svg"
	nsXLink = "http://www.w3.org/1999/xlink"
	nsXML   = "http://www.w3.org/XML/1998/namespace"
)

// Build converts a generic xmltree.Tree into an SVG intermediate Document:
// it recognizes elements/attributes against the closed EId/AId enums
// (dropping anything else.2), rewrites `<a>` into a `<g>`
// (its only role here is as a grouping container; link targets are outside
// this pipeline's scope), and collects `<style>` element bodies as raw
// stylesheet text for the CSS engine to parse. It does not yet apply CSS,
// inheritance, cycle-breaking, or use/symbol expansion — those are separate
// passes (css.go, cycles.go, use.go) run by Parse.
func Build(src *xmltree.Tree) (*Document, []string, error) {
	doc := &Document{
		ByID:   map[string]NodeID{},
		AllIDs: map[string]bool{},
	}
	var stylesheets []string

	var walk func(xid xmltree.NodeID, parent NodeID) NodeID
	walk = func(xid xmltree.NodeID, parent NodeID) NodeID {
		xn := src.Node(xid)

		if xn.Space != "" && xn.Space != nsSVG {
			return 0
		}

		eid, ok := ParseEId(xn.Local)
		if !ok {
			return 0
		}

		if eid == EStyle {
			stylesheets = append(stylesheets, xn.Text)
			return 0
		}

		if eid == EA {
			eid = EG
		}

		nid := doc.newNode(eid)
		n := doc.Node(nid)
		n.Parent = parent
		n.Text = xn.Text

		for _, a := range xn.Attrs {
			switch a.Space {
			case "", nsSVG:
				if a.Local == "marker" {
					n.Attrs[AUnknown] = a.Value // shorthand, expanded by ApplyCSS
				} else if aid, ok := ParseAId(a.Local); ok {
					n.Attrs[aid] = a.Value
				}
			case nsXLink, "xlink": // bare prefix when xmlns:xlink is undeclared
				if a.Local == "href" {
					n.Attrs[AHref] = a.Value
				}
			case nsXML:
				// xml:space, xml:lang, etc: not in the closed attribute set, ignored.
			}
		}

		if id, ok := n.Attrs[AId_]; ok && id != "" {
			n.ID = id
			doc.AllIDs[id] = true
			if _, dup := doc.ByID[id]; !dup {
				doc.ByID[id] = nid
			} else {
				doc.warn(id, "duplicate id %q, first occurrence wins", id)
			}
		}

		for _, xchild := range xn.Children {
			if cid := walk(xchild, nid); cid != 0 {
				n.Children = append(n.Children, cid)
			}
		}
		return nid
	}

	root := walk(src.Root, 0)
	if root == 0 {
		return nil, nil, ErrNoSVGRoot
	}
	doc.Root = root
	return doc, stylesheets, nil
}

// ErrNoSVGRoot is returned by Build (and so by Parse) when the document has
// no recognizable <svg> root element.
var ErrNoSVGRoot = nodeError("svgtree: document has no recognizable <svg> root")

type nodeError string

func (e nodeError) Error() string { return string(e) }
