package usvg

import "github.com/pgavlin/svgrender/svgtypes"

type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintServerRef
)

// Paint is a resolved fill or stroke paint: either absent, a solid color, or
// a reference to one of the document's paint servers. Unlike
// svgtypes.Paint, there is no unresolved "url(#id)" string left in it and no
// fallback branch — resolution (resolvePaint in resolve.go) has already
// chosen between the server and its fallback.
type Paint struct {
	Kind   PaintKind
	Color  svgtypes.Color
	Server *PaintServer
}

type PaintServerKind int

const (
	ServerLinearGradient PaintServerKind = iota
	ServerRadialGradient
	ServerPattern
)

// Units distinguishes objectBoundingBox (the default, fractions of the
// painted shape's bbox) from userSpaceOnUse coordinates, for every
// *Units attribute (gradientUnits, patternUnits, maskContentUnits, etc).
type Units int

const (
	UnitsObjectBoundingBox Units = iota
	UnitsUserSpaceOnUse
)

func ParseUnits(s string, def Units) Units {
	switch s {
	case "objectBoundingBox":
		return UnitsObjectBoundingBox
	case "userSpaceOnUse":
		return UnitsUserSpaceOnUse
	default:
		return def
	}
}

// GradientStop is a normalized gradient stop: offset clamped to [0,1] and
// non-decreasing across the list. An offset lower than its predecessor is
// bumped to just above it; equal offsets are kept as they are, except that
// a run of three or more is reduced to its first and last stop.
type GradientStop struct {
	Offset  float64
	Color   svgtypes.Color
	Opacity float64
}

// PaintServer is a resolved, deduplicated gradient or pattern definition.
// The document's paint-server cache (cache.go) guarantees one PaintServer
// per source id, so repeated references share a single instance instead of
// being re-resolved.
type PaintServer struct {
	Kind PaintServerKind
	ID   string

	// Gradient fields.
	Stops        []GradientStop
	Spread       svgtypes.SpreadMethod
	Units        Units
	Transform    svgtypes.Transform
	X1, Y1       float64
	X2, Y2       float64
	Cx, Cy, R    float64
	Fx, Fy, Fr   float64
	IsRadial     bool

	// Pattern fields.
	ContentUnits Units
	ViewBox      *svgtypes.ViewBox
	Rect         svgtypes.Rect // x/y/width/height in Units space
	Content      *Node         // a synthetic Group holding the pattern's children
}
