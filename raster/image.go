package raster

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

// renderImage decodes n's embedded or external raster data and draws it
// scaled into n.ImageRect, placed by world. Only the scale
// and translation components of world are honored: a sheared or rotated
// <image> draws unskewed at its axis-aligned destination rectangle, since
// golang.org/x/image/draw's scalers operate on two axis-aligned
// image.Rectangles, not an arbitrary affine map — a documented scope
// reduction (see DESIGN.md) shared with the teacher's own image.go, which
// never implemented more than straight placement either.
func (r *renderer) renderImage(n *usvg.Node, world svgtypes.Transform, img *image.RGBA) {
	data := n.ImageData
	if n.ImageFormat == "path" {
		if r.opts.ResourcesDir == "" {
			return
		}
		b, err := os.ReadFile(filepath.Join(r.opts.ResourcesDir, string(n.ImageData)))
		if err != nil {
			return
		}
		data = b
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}

	x0, y0 := world.Apply(n.ImageRect.X, n.ImageRect.Y)
	x1, y1 := world.Apply(n.ImageRect.X+n.ImageRect.W, n.ImageRect.Y+n.ImageRect.H)
	destRect := image.Rect(int(math.Min(x0, x1)), int(math.Min(y0, y1)), int(math.Max(x0, x1)), int(math.Max(y0, y1)))
	if destRect.Dx() <= 0 || destRect.Dy() <= 0 {
		return
	}

	scaler := xdraw.BiLinear
	switch n.ImageRendering {
	case usvg.RenderingOptimizeSpeed, usvg.RenderingCrispEdges:
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(img, destRect, src, src.Bounds(), draw.Over, nil)
}
