package raster

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

// buildDevicePath replays p's segments through world, issuing the
// corresponding gg path commands so dc ends up holding the shape in device
// pixel coordinates (see raster.go's package comment on why the transform is
// flattened here rather than handed to gg as a matrix).
func buildDevicePath(dc *gg.Context, p svgtypes.Path, world svgtypes.Transform) {
	dc.ClearPath()
	for _, s := range p.Segments {
		switch s.Kind {
		case svgtypes.SegMoveTo:
			x, y := world.Apply(s.X, s.Y)
			dc.NewSubPath()
			dc.MoveTo(x, y)
		case svgtypes.SegLineTo:
			x, y := world.Apply(s.X, s.Y)
			dc.LineTo(x, y)
		case svgtypes.SegCubicTo:
			x1, y1 := world.Apply(s.X1, s.Y1)
			x2, y2 := world.Apply(s.X2, s.Y2)
			x, y := world.Apply(s.X, s.Y)
			dc.CubicTo(x1, y1, x2, y2, x, y)
		case svgtypes.SegClose:
			dc.ClosePath()
		}
	}
}

func (r *renderer) renderPath(n *usvg.Node, world svgtypes.Transform, img *image.RGBA) {
	if n.Fill == nil && n.Stroke == nil {
		return
	}
	bbox := n.PathData.Bounds()
	dc := newGGContext(img)

	doFill := func() {
		if n.Fill == nil {
			return
		}
		buildDevicePath(dc, n.PathData, world)
		dc.SetFillStyle(r.devicePattern(n.Fill.Paint, n.Fill.Opacity, world, bbox))
		dc.Fill()
	}
	doStroke := func() {
		if n.Stroke == nil {
			return
		}
		buildDevicePath(dc, n.PathData, world)
		applyStrokeStyle(dc, n.Stroke, deviceScale(world))
		dc.SetStrokeStyle(r.devicePattern(n.Stroke.Paint, n.Stroke.Opacity, world, bbox))
		dc.Stroke()
	}

	if n.PaintOrder == svgtypes.PaintOrderStrokeFillMarkers {
		doStroke()
		doFill()
		return
	}
	doFill()
	doStroke()
}

func applyStrokeStyle(dc *gg.Context, s *usvg.Stroke, scale float64) {
	dc.SetLineWidth(s.Width * scale)
	switch s.LineCap {
	case svgtypes.LineCapRound:
		dc.SetLineCap(gg.LineCapRound)
	case svgtypes.LineCapSquare:
		dc.SetLineCap(gg.LineCapSquare)
	default:
		dc.SetLineCap(gg.LineCapButt)
	}
	switch s.LineJoin {
	case svgtypes.LineJoinRound:
		dc.SetLineJoin(gg.LineJoinRound)
	case svgtypes.LineJoinBevel:
		dc.SetLineJoin(gg.LineJoinBevel)
	default:
		dc.SetLineJoin(gg.LineJoinRound)
	}
	if len(s.Dasharray) > 0 {
		scaled := make([]float64, len(s.Dasharray))
		for i, d := range s.Dasharray {
			scaled[i] = d * scale
		}
		dc.SetDash(scaled...)
		dc.SetDashOffset(s.Dashoffset * scale)
	} else {
		dc.SetDash()
	}
}
