package usvg

import (
	"math"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/svgtypes"
)

// shapeToPath converts one of the basic shape elements (rect, circle,
// ellipse, line, polyline, polygon) into the same cubic-Bézier Path
// representation as an explicit <path d="...">.5. <path>
// itself is returned as-is via its own `d` attribute.
func shapeToPath(n *svgtree.Node, st svgtypes.ResolverState) (svgtypes.Path, bool) {
	switch n.EId {
	case svgtree.EPath:
		p, ok := n.PathData()
		return p, ok

	case svgtree.ERect:
		return rectToPath(n, st), true

	case svgtree.ECircle:
		cx := resolveLen(n, svgtree.ACx, svgtypes.AxisX, st)
		cy := resolveLen(n, svgtree.ACy, svgtypes.AxisY, st)
		r := resolveLen(n, svgtree.AR, svgtypes.AxisDiagonal, st)
		if r <= 0 {
			return svgtypes.Path{}, false
		}
		return ellipsePath(cx, cy, r, r), true

	case svgtree.EEllipse:
		cx := resolveLen(n, svgtree.ACx, svgtypes.AxisX, st)
		cy := resolveLen(n, svgtree.ACy, svgtypes.AxisY, st)
		rx := resolveLen(n, svgtree.ARx, svgtypes.AxisX, st)
		ry := resolveLen(n, svgtree.ARy, svgtypes.AxisY, st)
		if rx <= 0 || ry <= 0 {
			return svgtypes.Path{}, false
		}
		return ellipsePath(cx, cy, rx, ry), true

	case svgtree.ELine:
		x1 := resolveLen(n, svgtree.AX1, svgtypes.AxisX, st)
		y1 := resolveLen(n, svgtree.AY1, svgtypes.AxisY, st)
		x2 := resolveLen(n, svgtree.AX2, svgtypes.AxisX, st)
		y2 := resolveLen(n, svgtree.AY2, svgtypes.AxisY, st)
		var p svgtypes.Path
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		return p, true

	case svgtree.EPolyline, svgtree.EPolygon:
		s, _ := n.Get(svgtree.APoints)
		pts := svgtypes.ParsePoints(s)
		if len(pts) == 0 {
			return svgtypes.Path{}, false
		}
		var p svgtypes.Path
		p.MoveTo(pts[0].X, pts[0].Y)
		for _, pt := range pts[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		if n.EId == svgtree.EPolygon {
			p.Close()
		}
		return p, true
	}
	return svgtypes.Path{}, false
}

func resolveLen(n *svgtree.Node, aid svgtree.AId, axis svgtypes.Axis, st svgtypes.ResolverState) float64 {
	l, ok := n.Length(aid)
	if !ok {
		return 0
	}
	return svgtypes.Resolve(l, axis, st)
}

func ellipsePath(cx, cy, rx, ry float64) svgtypes.Path {
	var p svgtypes.Path
	p.MoveTo(cx+rx, cy)
	p.AppendEllipticalArc(cx, cy, rx, ry, 0, 90)
	p.AppendEllipticalArc(cx, cy, rx, ry, 90, 180)
	p.AppendEllipticalArc(cx, cy, rx, ry, 180, 270)
	p.AppendEllipticalArc(cx, cy, rx, ry, 270, 360)
	p.Close()
	return p
}

// rectToPath handles the rounded-rect corner case: rx/ry each default to the
// other if only one is given, both clamp to half the corresponding side.
func rectToPath(n *svgtree.Node, st svgtypes.ResolverState) svgtypes.Path {
	x := resolveLen(n, svgtree.AX, svgtypes.AxisX, st)
	y := resolveLen(n, svgtree.AY, svgtypes.AxisY, st)
	w := resolveLen(n, svgtree.AWidth, svgtypes.AxisX, st)
	h := resolveLen(n, svgtree.AHeight, svgtypes.AxisY, st)
	if w <= 0 || h <= 0 {
		return svgtypes.Path{}
	}

	rxL, hasRx := n.Length(svgtree.ARx)
	ryL, hasRy := n.Length(svgtree.ARy)
	var rx, ry float64
	switch {
	case hasRx && hasRy:
		rx = svgtypes.Resolve(rxL, svgtypes.AxisX, st)
		ry = svgtypes.Resolve(ryL, svgtypes.AxisY, st)
	case hasRx:
		rx = svgtypes.Resolve(rxL, svgtypes.AxisX, st)
		ry = rx
	case hasRy:
		ry = svgtypes.Resolve(ryL, svgtypes.AxisY, st)
		rx = ry
	}
	rx = math.Min(rx, w/2)
	ry = math.Min(ry, h/2)

	var p svgtypes.Path
	if rx <= 0 || ry <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x+w, y)
		p.LineTo(x+w, y+h)
		p.LineTo(x, y+h)
		p.Close()
		return p
	}

	p.MoveTo(x+rx, y)
	p.LineTo(x+w-rx, y)
	p.AppendEllipticalArc(x+w-rx, y+ry, rx, ry, -90, 0)
	p.LineTo(x+w, y+h-ry)
	p.AppendEllipticalArc(x+w-rx, y+h-ry, rx, ry, 0, 90)
	p.LineTo(x+rx, y+h)
	p.AppendEllipticalArc(x+rx, y+h-ry, rx, ry, 90, 180)
	p.LineTo(x, y+ry)
	p.AppendEllipticalArc(x+rx, y+ry, rx, ry, 180, 270)
	p.Close()
	return p
}
