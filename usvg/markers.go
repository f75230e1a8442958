package usvg

import (
	"math"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

// vertex is one path vertex plus the incoming/outgoing tangent direction
// used to orient an "auto" marker.
type vertex struct {
	x, y            float64
	inAngle, outAngle float64
	isStart, isEnd  bool
}

func pathVertices(p svgtypes.Path) []vertex {
	var verts []vertex
	var cx, cy float64
	var subStartIdx int

	addVertex := func(x, y, inAngle, outAngle float64) {
		verts = append(verts, vertex{x: x, y: y, inAngle: inAngle, outAngle: outAngle})
	}

	for i, s := range p.Segments {
		switch s.Kind {
		case svgtypes.SegMoveTo:
			subStartIdx = len(verts)
			addVertex(s.X, s.Y, 0, 0)
			cx, cy = s.X, s.Y
		case svgtypes.SegLineTo:
			ang := math.Atan2(s.Y-cy, s.X-cx)
			if len(verts) > 0 {
				verts[len(verts)-1].outAngle = ang
			}
			addVertex(s.X, s.Y, ang, ang)
			cx, cy = s.X, s.Y
		case svgtypes.SegCubicTo:
			outAng := math.Atan2(s.Y1-cy, s.X1-cx)
			if s.Y1 == cy && s.X1 == cx {
				outAng = math.Atan2(s.Y2-cy, s.X2-cx)
			}
			inAng := math.Atan2(s.Y-s.Y2, s.X-s.X2)
			if s.Y == s.Y2 && s.X == s.X2 {
				inAng = math.Atan2(s.Y-s.Y1, s.X-s.X1)
			}
			if len(verts) > 0 {
				verts[len(verts)-1].outAngle = outAng
			}
			addVertex(s.X, s.Y, inAng, inAng)
			cx, cy = s.X, s.Y
		case svgtypes.SegClose:
			if len(verts) > subStartIdx {
				start := verts[subStartIdx]
				ang := math.Atan2(start.y-cy, start.x-cx)
				verts[len(verts)-1].outAngle = ang
				cx, cy = start.x, start.y
			}
		}
		_ = i
	}
	if len(verts) > 0 {
		verts[0].isStart = true
		verts[len(verts)-1].isEnd = true
	}
	return verts
}

// instantiateMarkers builds one Group child per marker-start/mid/end
// reference, each placed at its vertex and rotated per `orient` ("auto"
// bisects the incoming/outgoing tangent; a fixed angle ignores the
// tangent).5.
func (c *converter) instantiateMarkers(n *svgtree.Node, path svgtypes.Path, strokeWidth float64) []*Node {
	startRef, hasStart := n.Get(svgtree.AMarkerStart)
	midRef, hasMid := n.Get(svgtree.AMarkerMid)
	endRef, hasEnd := n.Get(svgtree.AMarkerEnd)
	if !hasStart && !hasMid && !hasEnd {
		return nil
	}

	verts := pathVertices(path)
	if len(verts) == 0 {
		return nil
	}

	var out []*Node
	for i, v := range verts {
		var ref string
		switch {
		case v.isStart && hasStart:
			ref = startRef
		case v.isEnd && hasEnd:
			ref = endRef
		case !v.isStart && !v.isEnd && hasMid:
			ref = midRef
		default:
			continue
		}
		id := refID(ref)
		if id == "" {
			continue
		}
		if m := c.instantiateMarker(id, v, strokeWidth); m != nil {
			out = append(out, m)
		}
		_ = i
	}
	return out
}

func (c *converter) instantiateMarker(id string, v vertex, strokeWidth float64) *Node {
	nid, ok := c.doc.ByID[id]
	if !ok {
		return nil
	}
	mn := c.doc.Node(nid)
	if mn.EId != svgtree.EMarker {
		return nil
	}

	angle := bisect(v.inAngle, v.outAngle)
	if o, ok := mn.Get(svgtree.AOrient); ok {
		switch o {
		case "auto":
			// angle already computed
		case "auto-start-reverse":
			if v.isStart {
				angle += math.Pi
			}
		default:
			if deg, err := parseFloatSimple(o); err == nil {
				angle = deg * math.Pi / 180
			}
		}
	}

	refX := mn.Number(svgtree.ARefX, 0)
	refY := mn.Number(svgtree.ARefY, 0)
	w := mn.Number(svgtree.AMarkerWidth, 3)
	h := mn.Number(svgtree.AMarkerHeight, 3)
	if w <= 0 || h <= 0 {
		return nil
	}
	strokeUnits := mn.Attrs[svgtree.AMarkerUnits] != "userSpaceOnUse"

	t := svgtypes.Translate(v.x, v.y).Multiply(svgtypes.Rotate(angle * 180 / math.Pi))
	if strokeUnits {
		t = t.Multiply(svgtypes.Scale(strokeWidth, strokeWidth))
	}
	t = t.Multiply(svgtypes.Translate(-refX, -refY))

	g := &Node{Kind: KindGroup, Opacity: 1, Transform: t, Children: c.convertChildren(mn.Children)}
	return g
}

func bisect(in, out float64) float64 {
	dx := math.Cos(in) + math.Cos(out)
	dy := math.Sin(in) + math.Sin(out)
	if dx == 0 && dy == 0 {
		return out
	}
	return math.Atan2(dy, dx)
}

func parseFloatSimple(s string) (float64, error) {
	l, err := svgtypes.ParseLength(s)
	if err != nil {
		return 0, err
	}
	return l.Number, nil
}
