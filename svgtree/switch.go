package svgtree

import "strings"

// PreferredLanguages is consulted by ResolveSwitch to decide which child of
// a <switch> element survives. It defaults to English; callers (e.g. the
// CLI) may override it before the tree is built.
var PreferredLanguages = []string{"en"}

// ResolveSwitch implements the <switch> conditional-processing element
//: of a
// switch's direct children, the first whose systemLanguage/requiredFeatures/
// requiredExtensions test passes is kept and promoted in the switch's place;
// the rest are dropped. requiredFeatures/requiredExtensions are treated as
// always-true (this pipeline doesn't model the SVG feature-string registry),
// matching every child that only conditions on those; systemLanguage is
// matched against PreferredLanguages.
func ResolveSwitch(doc *Document) {
	var walk func(nid NodeID)
	walk = func(nid NodeID) {
		n := doc.Node(nid)
		for _, c := range n.Children {
			walk(c)
		}
		if n.EId != ESwitch {
			return
		}
		for _, c := range n.Children {
			cn := doc.Node(c)
			if switchConditionPasses(cn) {
				n.EId = EG
				n.Children = []NodeID{c}
				cn.Parent = nid
				return
			}
		}
		n.EId = EG
		n.Children = nil
	}
	walk(doc.Root)
}

func switchConditionPasses(n *Node) bool {
	if v, ok := n.Attrs[ASystemLanguage]; ok {
		if !languageListMatches(v) {
			return false
		}
	}
	return true
}

func languageListMatches(v string) bool {
	for _, tag := range strings.Split(v, ",") {
		tag = strings.TrimSpace(tag)
		for _, pref := range PreferredLanguages {
			if strings.EqualFold(tag, pref) || strings.HasPrefix(strings.ToLower(tag), strings.ToLower(pref)+"-") {
				return true
			}
		}
	}
	return false
}
