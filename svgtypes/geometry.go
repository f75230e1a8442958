package svgtypes

import "math"

// Point is a 2D user-space point.
type Point struct {
	X, Y float64
}

// Size is a non-negative width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle in user space.
type Rect struct {
	X, Y, W, H float64
}

// NonZeroRect is a Rect known to have strictly positive width and height.
// NewNonZeroRect returns (Rect{}, false) when that invariant doesn't hold.
type NonZeroRect struct {
	Rect
}

// NewNonZeroRect validates w,h > 0 before constructing a NonZeroRect.
func NewNonZeroRect(x, y, w, h float64) (NonZeroRect, bool) {
	if !(w > 0) || !(h > 0) {
		return NonZeroRect{}, false
	}
	return NonZeroRect{Rect{X: x, Y: y, W: w, H: h}}, true
}

// Union returns the smallest rect containing both r and o. A zero-sized r
// (the identity for bbox accumulation) is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.X+r.W, o.X+o.W)
	y1 := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Transform maps r's four corners through t and returns their bounding rect.
func (r Rect) Transform(t Transform) Rect {
	xs := make([]float64, 0, 4)
	ys := make([]float64, 0, 4)
	for _, c := range [4][2]float64{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}} {
		x, y := t.Apply(c[0], c[1])
		xs = append(xs, x)
		ys = append(ys, y)
	}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Align is a preserveAspectRatio alignment axis value.
type Align int

const (
	AlignMin Align = iota
	AlignMid
	AlignMax
)

// AspectRatio is the parsed preserveAspectRatio attribute.
type AspectRatio struct {
	None   bool
	AlignX Align
	AlignY Align
	Slice  bool // true = slice, false = meet
}

// DefaultAspectRatio is "xMidYMid meet".
var DefaultAspectRatio = AspectRatio{AlignX: AlignMid, AlignY: AlignMid}

// ViewBox couples a source-space rect with its aspect-ratio handling.
type ViewBox struct {
	Rect   NonZeroRect
	Aspect AspectRatio
}

// ParseAspectRatio parses the preserveAspectRatio grammar:
// "none" | ("xMinYMin"|"xMidYMin"|...|"xMaxYMax") (" meet"|" slice")?
func ParseAspectRatio(s string) AspectRatio {
	fields := splitFields(s)
	if len(fields) == 0 {
		return DefaultAspectRatio
	}
	i := 0
	if fields[0] == "defer" {
		i++
	}
	if i >= len(fields) {
		return DefaultAspectRatio
	}
	align := fields[i]
	i++
	slice := false
	if i < len(fields) && fields[i] == "slice" {
		slice = true
	}
	if align == "none" {
		return AspectRatio{None: true}
	}
	if len(align) != len("xMidYMid") {
		return DefaultAspectRatio
	}
	ar := AspectRatio{Slice: slice}
	switch align[1:4] {
	case "Min":
		ar.AlignX = AlignMin
	case "Mid":
		ar.AlignX = AlignMid
	case "Max":
		ar.AlignX = AlignMax
	}
	switch align[5:8] {
	case "Min":
		ar.AlignY = AlignMin
	case "Mid":
		ar.AlignY = AlignMid
	case "Max":
		ar.AlignY = AlignMax
	}
	return ar
}

func splitFields(s string) []string {
	var out []string
	field := ""
	flush := func() {
		if field != "" {
			out = append(out, field)
			field = ""
		}
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			flush()
			continue
		}
		field += string(r)
	}
	flush()
	return out
}

// ViewBoxTransform computes the transform that maps vb's source rect into
// the target viewport rect, honoring the align/meet-or-slice rule.
func ViewBoxTransform(vb ViewBox, viewport Rect) Transform {
	sx := viewport.W / vb.Rect.W
	sy := viewport.H / vb.Rect.H

	if !vb.Aspect.None {
		if vb.Aspect.Slice {
			sx = math.Max(sx, sy)
			sy = sx
		} else {
			sx = math.Min(sx, sy)
			sy = sx
		}
	}

	tx := viewport.X - vb.Rect.X*sx
	ty := viewport.Y - vb.Rect.Y*sy

	if !vb.Aspect.None {
		extraX := viewport.W - vb.Rect.W*sx
		extraY := viewport.H - vb.Rect.H*sy
		switch vb.Aspect.AlignX {
		case AlignMid:
			tx += extraX / 2
		case AlignMax:
			tx += extraX
		}
		switch vb.Aspect.AlignY {
		case AlignMid:
			ty += extraY / 2
		case AlignMax:
			ty += extraY
		}
	}

	return Translate(tx, ty).Multiply(Scale(sx, sy))
}
