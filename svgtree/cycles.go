package svgtree

import "strings"

// urlRef extracts the fragment id from a "url(#id)" value, or "" if v is not
// a url() reference.
func urlRef(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return ""
	}
	close := strings.IndexByte(v, ')')
	if close < 0 {
		return ""
	}
	ref := strings.Trim(strings.TrimSpace(v[4:close]), "'\"")
	return strings.TrimPrefix(ref, "#")
}

// BreakCycles walks every paint-server href chain and every clip-path/mask/
// filter self-reference chain, rewriting the edge that would close a loop to
// the literal string "none" and recording a warning.6. It
// must run after ApplyCSS (so attribute values are in final form) and before
// use/symbol expansion.
func BreakCycles(doc *Document) {
	for nid := NodeID(1); int(nid) < len(doc.Nodes); nid++ {
		n := doc.Node(nid)
		switch n.EId {
		case ELinearGradient, ERadialGradient, EPattern:
			breakChain(doc, nid, AHref)
		case EClipPath, EMask, EFilter:
			breakChain(doc, nid, AClipPath)
			breakChain(doc, nid, AMask)
			breakChain(doc, nid, AFilter)
		}
		if n.EId == EFeImage {
			breakFeImageSelfRef(doc, nid)
		}
	}
}

// breakChain follows the url(#id) chain starting at attribute `attr` on
// node nid, clearing the edge that would revisit an id already on the path.
func breakChain(doc *Document, nid NodeID, attr AId) {
	visited := map[string]bool{}
	if doc.Node(nid).ID != "" {
		visited[doc.Node(nid).ID] = true
	}
	cur := nid
	for {
		n := doc.Node(cur)
		v, ok := n.Attrs[attr]
		if !ok {
			return
		}
		ref := hrefTarget(v)
		if ref == "" {
			return
		}
		if visited[ref] {
			n.Attrs[attr] = "none"
			doc.warn(n.ID, "cyclic %v reference through #%s rewritten to none", attr, ref)
			return
		}
		target, ok := doc.ByID[ref]
		if !ok {
			return
		}
		visited[ref] = true
		cur = target
	}
}

// breakFeImageSelfRef handles the case where a feImage's href targets an
// element that contains it (such as its own enclosing filter), an
// unresolvable cycle since rendering the filter would require having
// already rendered it. Per the resolved Open Question the feImage's href is
// removed rather than treated as a fatal error.
func breakFeImageSelfRef(doc *Document, nid NodeID) {
	n := doc.Node(nid)
	v, ok := n.Attrs[AHref]
	if !ok {
		return
	}
	ref := hrefTarget(v)
	if ref == "" {
		return
	}
	target, ok := doc.ByID[ref]
	if !ok {
		return
	}
	for p := n.Parent; p != 0; p = doc.Node(p).Parent {
		if p == target {
			delete(n.Attrs, AHref)
			doc.warn(n.ID, "feImage references its own enclosing filter #%s, dropped", ref)
			return
		}
	}
}
