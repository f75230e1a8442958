package svgtree

// MaxUseDepth bounds recursive <use> expansion.
const MaxUseDepth = 128

// ResolveUse replaces every <use> element with a deep copy of its referenced
// subtree, wrapped in a synthetic <g> carrying the use element's own
// transform/x/y/width/height and any attributes it overrides by inheritance.
// <symbol> referenced by a <use> is treated as an implicit <svg> (it gets a
// viewBox/width/height applied the same way a nested <svg> would); <symbol>
// elements are otherwise non-rendering and are skipped when encountered
// outside of `use` resolution.
func ResolveUse(doc *Document) {
	var expand func(nid NodeID, depth int) NodeID
	expand = func(nid NodeID, depth int) NodeID {
		n := doc.Node(nid)
		if n.EId == EUse {
			if depth >= MaxUseDepth {
				doc.warn(n.ID, "use nesting exceeds %d, dropped", MaxUseDepth)
				n.EId = EG
				n.Children = nil
				return nid
			}

			ref := hrefTarget(n.Attrs[AHref])
			target, ok := doc.ByID[ref]
			if ref == "" || !ok {
				doc.warn(n.ID, "use references missing id %q", ref)
				n.EId = EG
				n.Children = nil
				return nid
			}

			// A self-reference (or a reference to an ancestor) is a cycle;
			// drop it rather than recursing forever.
			for p := nid; p != 0; p = doc.Node(p).Parent {
				if p == target {
					doc.warn(n.ID, "use references an ancestor, dropped")
					n.EId = EG
					n.Children = nil
					return nid
				}
			}

			clone := cloneSubtree(doc, target, nid)
			targetNode := doc.Node(target)
			if targetNode.EId == ESymbol {
				// usvg's converter gives <svg> elements viewBox-fit and
				// viewport-clip treatment; a <symbol> instantiated by <use>
				// needs exactly that behavior, so retag it as <svg> rather
				// than duplicating the viewport logic here.
				doc.Node(clone).EId = ESvg
				applySymbolGeometry(doc, clone, n)
			}

			n.EId = EG
			n.Children = []NodeID{clone}
			delete(n.Attrs, AHref)

			return expand(clone, depth+1)
		}

		for i, c := range n.Children {
			n.Children[i] = expand(c, depth)
		}
		return nid
	}

	expand(doc.Root, 0)
}

func hrefTarget(v string) string {
	if len(v) > 0 && v[0] == '#' {
		return v[1:]
	}
	return urlRef(v)
}

// applySymbolGeometry maps a <use>'s x/y/width/height onto the synthetic
// group standing in for the referenced <symbol>, mirroring how a nested
// <svg>'s viewport attributes are consumed.
func applySymbolGeometry(doc *Document, gid NodeID, use *Node) {
	g := doc.Node(gid)
	for _, aid := range [...]AId{AX, AY, AWidth, AHeight, AViewBox, APreserveAspectRatio} {
		if v, ok := use.Attrs[aid]; ok {
			g.Attrs[aid] = v
		}
	}
}

// cloneSubtree deep-copies the subtree rooted at src into new nodes parented
// under parent, returning the id of the copy's root. Copied nodes do not
// retain their source ids (to avoid id collisions); only the root is
// re-parented into the live tree, since copies are never looked up by id.
func cloneSubtree(doc *Document, src NodeID, parent NodeID) NodeID {
	srcNode := doc.Node(src)
	nid := NodeID(len(doc.Nodes))
	copyAttrs := make(map[AId]string, len(srcNode.Attrs))
	for k, v := range srcNode.Attrs {
		copyAttrs[k] = v
	}
	doc.Nodes = append(doc.Nodes, &Node{
		EId:    srcNode.EId,
		Attrs:  copyAttrs,
		Text:   srcNode.Text,
		Parent: parent,
	})
	clone := doc.Node(nid)
	for _, c := range srcNode.Children {
		clone.Children = append(clone.Children, cloneSubtree(doc, c, nid))
	}
	return nid
}
