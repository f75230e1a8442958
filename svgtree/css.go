package svgtree

import (
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssSelector is a chain of simple selectors joined by descendant
// combinators ("div .foo #bar" -> three simple selectors). This engine does
// not support child (>), sibling (~, +) or attribute selectors; the corpus
// of SVG stylesheets this pipeline targets sticks to type/class/id/
// descendant selectors.3.
type cssSimpleSelector struct {
	eid     EId // 0 = any (universal selector or unrecognized tag name)
	any     bool
	id      string
	classes []string
}

type cssSelector struct {
	parts []cssSimpleSelector // parts[len-1] is the rightmost (matched element)
}

type cssRule struct {
	selectors []cssSelector
	decls     map[AId]string
	order     int
}

func (s cssSimpleSelector) specificity() int {
	sp := 0
	if s.id != "" {
		sp += 100
	}
	sp += 10 * len(s.classes)
	if !s.any {
		sp++
	}
	return sp
}

func (sel cssSelector) specificity() int {
	sp := 0
	for _, p := range sel.parts {
		sp += p.specificity()
	}
	return sp
}

// ParseStylesheet parses the contents of one or more `<style>` elements into
// a source-ordered list of rules. Malformed rules are skipped, not fatal
//.
func ParseStylesheet(text string, order *int) []cssRule {
	l := css.NewLexer(parse.NewInputString(text))
	var rules []cssRule
	var selectorBuf strings.Builder

	flushSelectors := func(declText string) {
		decls := parseDeclarations(declText)
		if len(decls) == 0 {
			return
		}
		var sels []cssSelector
		for _, part := range strings.Split(selectorBuf.String(), ",") {
			if sel, ok := parseSelector(part); ok {
				sels = append(sels, sel)
			}
		}
		if len(sels) > 0 {
			*order++
			rules = append(rules, cssRule{selectors: sels, decls: decls, order: *order})
		}
		selectorBuf.Reset()
	}

	var declBuf strings.Builder
	inBlock := false
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.LeftBraceToken:
			inBlock = true
			declBuf.Reset()
		case css.RightBraceToken:
			inBlock = false
			flushSelectors(declBuf.String())
		default:
			if inBlock {
				declBuf.Write(data)
				declBuf.WriteByte(' ')
			} else {
				selectorBuf.Write(data)
			}
		}
	}
	return rules
}

func parseDeclarations(s string) map[AId]string {
	decls := map[AId]string{}
	for _, stmt := range strings.Split(s, ";") {
		idx := strings.IndexByte(stmt, ':')
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(stmt[:idx])
		val := strings.TrimSpace(stmt[idx+1:])
		if name == "" || val == "" {
			continue
		}
		if name == "marker" {
			decls[AUnknown] = val
		} else if aid, ok := attrNames[name]; ok && aid != AUnknown {
			decls[aid] = val
		}
	}
	return decls
}

func parseSelector(s string) (cssSelector, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return cssSelector{}, false
	}
	var parts []cssSimpleSelector
	for _, f := range fields {
		ss := cssSimpleSelector{}
		rest := f
		if rest == "*" {
			ss.any = true
		} else {
			for len(rest) > 0 && rest[0] != '.' && rest[0] != '#' {
				// consume the type name up to the first class/id marker
				i := strings.IndexAny(rest, ".#")
				if i < 0 {
					i = len(rest)
				}
				typeName := rest[:i]
				rest = rest[i:]
				if typeName == "" {
					ss.any = true
				} else if eid, ok := ParseEId(typeName); ok {
					ss.eid = eid
				} else {
					ss.any = true
				}
			}
			for len(rest) > 0 {
				marker := rest[0]
				i := strings.IndexAny(rest[1:], ".#")
				var tok string
				if i < 0 {
					tok, rest = rest[1:], ""
				} else {
					tok, rest = rest[1:i+1], rest[i+1:]
				}
				if marker == '#' {
					ss.id = tok
				} else {
					ss.classes = append(ss.classes, tok)
				}
			}
		}
		parts = append(parts, ss)
	}
	return cssSelector{parts: parts}, true
}

func nodeHasClass(n *Node, class string) bool {
	c, ok := n.Attrs[AClass]
	if !ok {
		return false
	}
	for _, f := range strings.Fields(c) {
		if f == class {
			return true
		}
	}
	return false
}

func simpleMatches(n *Node, ss cssSimpleSelector) bool {
	if !ss.any && ss.eid != n.EId {
		return false
	}
	if ss.id != "" && n.ID != ss.id {
		return false
	}
	for _, c := range ss.classes {
		if !nodeHasClass(n, c) {
			return false
		}
	}
	return true
}

// selectorMatches walks the ancestor chain right to left: the rightmost
// simple selector must match n itself, and each selector to its left must
// match some strict ancestor, in order (a plain descendant combinator).
func selectorMatches(doc *Document, nid NodeID, sel cssSelector) bool {
	n := doc.Node(nid)
	i := len(sel.parts) - 1
	if !simpleMatches(n, sel.parts[i]) {
		return false
	}
	i--
	cur := n.Parent
	for i >= 0 {
		if cur == 0 {
			return false
		}
		an := doc.Node(cur)
		if simpleMatches(an, sel.parts[i]) {
			i--
		}
		cur = an.Parent
	}
	return true
}

// ApplyCSS resolves presentation values for every node: matching stylesheet
// rules (sorted by specificity, then source order) lose to the `style`
// attribute, which loses to nothing (it's the final override); presentation
// attributes apply only where neither set a value.
func ApplyCSS(doc *Document, stylesheets []string) {
	var order int
	var rules []cssRule
	for _, sheet := range stylesheets {
		rules = append(rules, ParseStylesheet(sheet, &order)...)
	}

	var walk func(nid NodeID)
	walk = func(nid NodeID) {
		if nid == 0 {
			return
		}
		n := doc.Node(nid)
		presentation := n.Attrs // attributes collected directly in build.go
		resolved := map[AId]string{}

		type match struct {
			specificity int
			order       int
			decls       map[AId]string
		}
		var matched []match
		for _, r := range rules {
			for _, sel := range r.selectors {
				if selectorMatches(doc, nid, sel) {
					matched = append(matched, match{sel.specificity(), r.order, r.decls})
					break
				}
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].specificity != matched[j].specificity {
				return matched[i].specificity < matched[j].specificity
			}
			return matched[i].order < matched[j].order
		})
		for _, m := range matched {
			for aid, v := range m.decls {
				resolved[aid] = v
			}
		}

		if styleAttr, ok := presentation[AStyle]; ok {
			for aid, v := range parseDeclarations(styleAttr) {
				resolved[aid] = v
			}
		}

		for aid, v := range presentation {
			if aid == AStyle || aid == AClass {
				continue
			}
			if _, ok := resolved[aid]; !ok {
				resolved[aid] = v
			}
		}

		expandShorthands(resolved)
		n.Attrs = resolved

		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc.Root)

	resolveInheritance(doc, doc.Root, map[AId]string{})
	resolveCurrentColor(doc, doc.Root, "black")
}

// expandShorthands expands the `marker` shorthand property into its longhand
// AIds, in place. The `font` shorthand is not expanded: it has no AId, so a
// `font` attribute or declaration is dropped before this pass runs.
func expandShorthands(attrs map[AId]string) {
	if v, ok := attrs[APaintOrder]; ok {
		attrs[APaintOrder] = strings.TrimSpace(v)
	}
	// `marker` sets marker-start/mid/end uniformly unless a longhand is
	// already present (longhands always win over the shorthand).
	if v, ok := attrs[AUnknown]; ok {
		delete(attrs, AUnknown)
		for _, aid := range [3]AId{AMarkerStart, AMarkerMid, AMarkerEnd} {
			if _, has := attrs[aid]; !has {
				attrs[aid] = v
			}
		}
	}
}

// resolveInheritance walks the tree top-down, filling unset inheritable
// attributes from the parent's resolved value, resolving the literal
// `inherit` keyword (forcing inheritance even for non-inheritable
// properties), and falling back to the spec-default table at the root.
func resolveInheritance(doc *Document, nid NodeID, parentResolved map[AId]string) {
	n := doc.Node(nid)
	final := map[AId]string{}

	for aid, v := range n.Attrs {
		if v == "inherit" {
			if pv, ok := parentResolved[aid]; ok {
				final[aid] = pv
			} else if dv, ok := attrDefaults[aid]; ok {
				final[aid] = dv
			}
			continue
		}
		final[aid] = v
	}

	for aid := range inheritableAttrs {
		if _, ok := final[aid]; ok {
			continue
		}
		if pv, ok := parentResolved[aid]; ok {
			final[aid] = pv
		} else if dv, ok := attrDefaults[aid]; ok {
			final[aid] = dv
		}
	}

	n.Attrs = final
	for _, c := range n.Children {
		resolveInheritance(doc, c, final)
	}
}

// resolveCurrentColor substitutes the literal "currentColor" keyword in
// paint-bearing attributes with the node's resolved `color` value, which
// itself may have just been inherited.
func resolveCurrentColor(doc *Document, nid NodeID, inherited string) {
	n := doc.Node(nid)
	color := inherited
	if v, ok := n.Attrs[AColor]; ok && v != "currentColor" {
		color = v
	}
	for _, aid := range [...]AId{AFill, AStroke, AStopColor, AFloodColor, ALightingColor} {
		if v, ok := n.Attrs[aid]; ok && v == "currentColor" {
			n.Attrs[aid] = color
		}
	}
	for _, c := range n.Children {
		resolveCurrentColor(doc, c, color)
	}
}
