package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
	"github.com/pgavlin/svgrender/usvg/usvgtext"
)

// renderText draws every glyph outline in n.Text as its own filled/stroked
// path, in the same device-space-flattened style as renderPath; glyph
// outlines already carry their pen position (baked in by usvgtext.Shape),
// so only n's own world transform needs to be applied on top.
func (r *renderer) renderText(n *usvg.Node, world svgtypes.Transform, img *image.RGBA) {
	if n.Text == nil {
		return
	}
	dc := newGGContext(img)
	for _, chunk := range n.Text.Chunks {
		for _, run := range chunk.Runs {
			for _, g := range run.Glyphs {
				if run.Fill != nil {
					buildDevicePath(dc, g.Outline, world)
					dc.SetFillStyle(gg.NewSolidPattern(runPaintColor(run.Fill)))
					dc.Fill()
				}
				if run.Stroke != nil {
					buildDevicePath(dc, g.Outline, world)
					dc.SetLineWidth(run.Stroke.Width * deviceScale(world))
					dc.SetStrokeStyle(gg.NewSolidPattern(runPaintColor(run.Stroke)))
					dc.Stroke()
				}
				if run.Fill == nil && run.Stroke == nil {
					// Neither paint resolved (e.g. fill="none" with no
					// stroke): default.8 is an implicit black
					// fill, matching plain text with no style at all.
					buildDevicePath(dc, g.Outline, world)
					dc.SetFillStyle(gg.NewSolidPattern(colorToGo(svgtypes.Color{}, 1)))
					dc.Fill()
				}
			}
		}
	}
}

func runPaintColor(rp *usvgtext.RunPaint) color.NRGBA {
	return colorToGo(svgtypes.Color{R: rp.ColorR, G: rp.ColorG, B: rp.ColorB}, rp.Opacity)
}
