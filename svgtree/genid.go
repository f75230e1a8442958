package svgtree

import "fmt"

// idPrefixes names the per-kind counter used by GenerateIDs, mirroring
// resvg's canonical id scheme (e.g. "linearGradient1", "clipPath2").
var idPrefixes = map[EId]string{
	ELinearGradient: "linearGradient",
	ERadialGradient: "radialGradient",
	EPattern:        "pattern",
	EClipPath:       "clipPath",
	EMask:           "mask",
	EFilter:         "filter",
	EMarker:         "marker",
}

// GenerateIDs assigns a canonical, collision-free id to every node of a kind
// in idPrefixes that doesn't already have one. Paint servers, clip paths,
// masks, filters and markers are always addressed by id downstream (the
// render tree references them by id, and the canonical writer emits them as
// top-level defs), so every instance needs one even if the source SVG never
// gave it a name.
func GenerateIDs(doc *Document) {
	counters := map[EId]int{}
	for _, n := range doc.Nodes[1:] {
		if n.ID != "" {
			continue
		}
		prefix, ok := idPrefixes[n.EId]
		if !ok {
			continue
		}
		for {
			counters[n.EId]++
			candidate := fmt.Sprintf("%s%d", prefix, counters[n.EId])
			if !doc.AllIDs[candidate] {
				n.ID = candidate
				doc.AllIDs[candidate] = true
				doc.ByID[candidate] = doc.idOf(n)
				break
			}
		}
	}
}

// idOf finds n's NodeID by linear scan; GenerateIDs runs once per document
// so this is not on a hot path.
func (d *Document) idOf(n *Node) NodeID {
	for i, other := range d.Nodes {
		if other == n {
			return NodeID(i)
		}
	}
	return 0
}
