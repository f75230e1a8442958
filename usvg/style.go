package usvg

import "github.com/pgavlin/svgrender/svgtypes"

// Fill and Stroke hold the fully-resolved paint style for a Path node
//.
type Fill struct {
	Paint   Paint
	Opacity float64
	Rule    svgtypes.FillRule
}

type Stroke struct {
	Paint      Paint
	Opacity    float64
	Width      float64
	LineCap    svgtypes.LineCap
	LineJoin   svgtypes.LineJoin
	Miterlimit float64
	Dasharray  []float64
	Dashoffset float64
}
