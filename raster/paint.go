package raster

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

// devicePattern resolves a usvg.Paint into a gg.Pattern in device space.
// bbox is the painted shape's bounding box in its own local (pre-world)
// coordinate system, needed for objectBoundingBox-unit gradients/patterns.
func (r *renderer) devicePattern(p usvg.Paint, opacity float64, world svgtypes.Transform, bbox svgtypes.Rect) gg.Pattern {
	switch p.Kind {
	case usvg.PaintColor:
		return gg.NewSolidPattern(colorToGo(p.Color, opacity))
	case usvg.PaintServerRef:
		if p.Server == nil {
			return gg.NewSolidPattern(colorToGo(svgtypes.Color{}, 0))
		}
		switch p.Server.Kind {
		case usvg.ServerLinearGradient:
			return r.linearGradientPattern(p.Server, opacity, world, bbox)
		case usvg.ServerRadialGradient:
			return r.radialGradientPattern(p.Server, opacity, world, bbox)
		case usvg.ServerPattern:
			col, alpha := r.patternAverageColor(p.Server, world, bbox)
			return gg.NewSolidPattern(colorToGo(col, opacity*alpha))
		}
	}
	return gg.NewSolidPattern(colorToGo(svgtypes.Color{}, 0))
}

// mapServerPoint places a gradient coordinate (a raw attribute value, either
// a fraction of bbox or an absolute user-space coordinate depending on
// ps.Units) into device pixel space: objectBoundingBox fractions are first
// scaled into the shape's local bbox, then both cases go through the
// gradient's own gradientTransform and the node's world transform, the same
// two-step composition describes for paint-server resolution.
func mapServerPoint(ps *usvg.PaintServer, world svgtypes.Transform, bbox svgtypes.Rect, x, y float64) (float64, float64) {
	if ps.Units == usvg.UnitsObjectBoundingBox {
		x = bbox.X + x*bbox.W
		y = bbox.Y + y*bbox.H
	}
	lx, ly := ps.Transform.Apply(x, y)
	return world.Apply(lx, ly)
}

func (r *renderer) linearGradientPattern(ps *usvg.PaintServer, opacity float64, world svgtypes.Transform, bbox svgtypes.Rect) gg.Pattern {
	if len(ps.Stops) == 0 {
		return gg.NewSolidPattern(colorToGo(svgtypes.Color{}, 0))
	}
	if len(ps.Stops) == 1 {
		s := ps.Stops[0]
		return gg.NewSolidPattern(colorToGo(s.Color, s.Opacity*opacity))
	}
	x0, y0 := mapServerPoint(ps, world, bbox, ps.X1, ps.Y1)
	x1, y1 := mapServerPoint(ps, world, bbox, ps.X2, ps.Y2)
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	addStops(grad, ps.Stops, opacity)
	return grad
}

func (r *renderer) radialGradientPattern(ps *usvg.PaintServer, opacity float64, world svgtypes.Transform, bbox svgtypes.Rect) gg.Pattern {
	if len(ps.Stops) == 0 {
		return gg.NewSolidPattern(colorToGo(svgtypes.Color{}, 0))
	}
	if len(ps.Stops) == 1 {
		s := ps.Stops[0]
		return gg.NewSolidPattern(colorToGo(s.Color, s.Opacity*opacity))
	}
	cx, cy := mapServerPoint(ps, world, bbox, ps.Cx, ps.Cy)
	fx, fy := mapServerPoint(ps, world, bbox, ps.Fx, ps.Fy)
	scale := deviceScale(world.Multiply(ps.Transform))
	if ps.Units == usvg.UnitsObjectBoundingBox {
		scale *= (bbox.W + bbox.H) / 2
	}
	r0 := ps.R * scale
	grad := gg.NewRadialGradient(fx, fy, 0, cx, cy, r0)
	addStops(grad, ps.Stops, opacity)
	return grad
}

func addStops(grad gg.Gradient, stops []usvg.GradientStop, opacity float64) {
	for _, s := range stops {
		grad.AddColorStop(s.Offset, colorToGo(s.Color, s.Opacity*opacity))
	}
}

// deviceScale approximates a (possibly non-uniform) affine transform's
// linear scale factor as the average of its two axis lengths; used to place
// a circular radial gradient into device space without an elliptical
// gradient primitive.
func deviceScale(t svgtypes.Transform) float64 {
	sx := math.Hypot(t.A, t.B)
	sy := math.Hypot(t.C, t.D)
	return (sx + sy) / 2
}

// patternAverageColor renders one copy of the pattern's tile content and
// reduces it to its average color. A true tiled-surface pattern (sampling
// fogleman/gg's NewSurfacePattern/RepeatOp) would need this package to
// verify that API's exact signature against the real library, which this
// sandbox has no means to do (no populated module cache, no network); since
// an unverifiable guess risks shipping code that doesn't compile against
// the real dependency, rendering the tile to a representative solid is the
// documented scope reduction here (see DESIGN.md) rather than a true tile.
// patternAverageColor also returns the tile's average alpha (0 for, e.g., a
// pattern whose only content had its fill neutralized to none
// §8.3 scenario 2) so the caller paints proportionally transparent rather
// than opaque black when the tile has nothing drawn into it.
func (r *renderer) patternAverageColor(ps *usvg.PaintServer, world svgtypes.Transform, bbox svgtypes.Rect) (svgtypes.Color, float64) {
	if ps.Content == nil {
		return svgtypes.Color{}, 0
	}
	rect := ps.Rect
	if ps.Units == usvg.UnitsObjectBoundingBox {
		rect = svgtypes.Rect{X: bbox.X + rect.X*bbox.W, Y: bbox.Y + rect.Y*bbox.H, W: rect.W * bbox.W, H: rect.H * bbox.H}
	}
	devRect := rect.Transform(world.Multiply(ps.Transform))
	w, h := int(math.Ceil(devRect.W)), int(math.Ceil(devRect.H))
	if w <= 0 || h <= 0 || w > 2048 || h > 2048 {
		w, h = 16, 16
	}
	tile := image.NewRGBA(image.Rect(0, 0, w, h))
	tileWorld := svgtypes.Translate(-devRect.X, -devRect.Y).Multiply(world)
	tr := &renderer{bounds: tile.Bounds(), opts: r.opts}
	tr.renderNode(ps.Content, tileWorld, tile)

	var rSum, gSum, bSum, aSum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := tile.RGBAAt(x, y)
			a := float64(c.A)
			rSum += float64(c.R) * a
			gSum += float64(c.G) * a
			bSum += float64(c.B) * a
			aSum += a
		}
	}
	if aSum == 0 {
		return svgtypes.Color{}, 0
	}
	avgAlpha := aSum / float64(w*h) / 255
	return svgtypes.Color{R: clampByte(rSum / aSum), G: clampByte(gSum / aSum), B: clampByte(bSum / aSum)}, avgAlpha
}
