package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

// appendSubPath adds p's segments to dc as a new subpath in device space,
// without clearing whatever's already on dc's path — used to accumulate a
// clip region's children into one coverage path before a single Fill call
//.
func appendSubPath(dc *gg.Context, p svgtypes.Path, world svgtypes.Transform) {
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

func buildClipCoverage(dc *gg.Context, n *usvg.Node, world svgtypes.Transform) {
	if n == nil {
		return
	}
	world = world.Multiply(n.Transform)
	switch n.Kind {
	case usvg.KindPath:
		appendSubPath(dc, n.PathData, world)
	case usvg.KindGroup:
		for _, c := range n.Children {
			buildClipCoverage(dc, c, world)
		}
	case usvg.KindText:
		if n.Text == nil {
			return
		}
		for _, chunk := range n.Text.Chunks {
			for _, run := range chunk.Runs {
				for _, g := range run.Glyphs {
					appendSubPath(dc, g.Outline, world)
				}
			}
		}
	}
}

// clipCoverageMask renders cp's children into a white-on-transparent alpha
// mask, intersecting recursively with a nested clip-path if present.
func clipCoverageMask(bounds image.Rectangle, cp *usvg.ClipPath, world svgtypes.Transform) *image.RGBA {
	mask := image.NewRGBA(bounds)
	dc := newGGContext(mask)
	dc.SetFillStyle(gg.NewSolidPattern(color.White))
	cpWorld := world.Multiply(cp.Transform)
	for _, c := range cp.Children {
		buildClipCoverage(dc, c, cpWorld)
	}
	dc.Fill()

	if cp.ClipPath != nil {
		inner := clipCoverageMask(bounds, cp.ClipPath, world)
		multiplyAlpha(mask, inner, bounds)
	}
	return mask
}

// applyClip zeroes out layer's alpha anywhere cp's coverage mask is
// transparent.
func applyClip(layer *image.RGBA, bounds image.Rectangle, cp *usvg.ClipPath, world svgtypes.Transform) {
	mask := clipCoverageMask(bounds, cp, world)
	multiplyAlpha(layer, mask, bounds)
}

func multiplyAlpha(dst, mask *image.RGBA, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dc := dst.RGBAAt(x, y)
			if dc.A == 0 {
				continue
			}
			mc := mask.RGBAAt(x, y)
			factor := float64(mc.A) / 255
			dst.Set(x, y, color.RGBA{R: dc.R, G: dc.G, B: dc.B, A: clampByte(float64(dc.A) * factor)})
		}
	}
}

// applyMask renders m's children into an offscreen buffer and multiplies
// layer's alpha by each pixel's luminance (or, for an alpha mask, its own
// alpha).7. m.Region (the maskUnits x/y/width/height
// clipping rectangle) isn't applied — the mask's content still only covers
// whatever it actually draws, so this only matters when mask content
// extends past its nominal region, a narrow scope reduction noted in
// DESIGN.md.
func applyMask(r *renderer, layer *image.RGBA, m *usvg.Mask, world svgtypes.Transform) {
	maskImg := image.NewRGBA(r.bounds)
	mr := &renderer{bounds: r.bounds, opts: r.opts}
	for _, c := range m.Children {
		mr.renderNode(c, world, maskImg)
	}
	if m.Mask != nil {
		applyMask(r, maskImg, m.Mask, world)
	}

	bounds := r.bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			lc := layer.RGBAAt(x, y)
			if lc.A == 0 {
				continue
			}
			mc := maskImg.RGBAAt(x, y)
			var factor float64
			if m.Luminance {
				factor = (0.2125*float64(mc.R) + 0.7154*float64(mc.G) + 0.0721*float64(mc.B)) / 255 * (float64(mc.A) / 255)
			} else {
				factor = float64(mc.A) / 255
			}
			layer.Set(x, y, color.RGBA{R: lc.R, G: lc.G, B: lc.B, A: clampByte(float64(lc.A) * factor)})
		}
	}
}
