// Package raster walks a converted usvg.Tree and rasterizes it into a
// premultiplied RGBA pixmap, the way the teacher's (now superseded)
// renderer.go walked its Element tree with a fogleman/gg context. Rather than driving gg's own
// transform stack, every node's geometry is flattened into device-pixel
// coordinates before it reaches gg: svgtree/usvg already chose to resolve
// everything eagerly instead of carrying it lazily (SPEC_FULL.md's Design
// Notes), and doing the same for transforms here means gg only ever sees
// already-placed path coordinates, never a matrix it has to compose itself.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/pgavlin/svgrender/svgtypes"
	"github.com/pgavlin/svgrender/usvg"
)

// ErrNodeNotFound is returned by RenderNode when the requested id doesn't
// name a node in the tree.
var ErrNodeNotFound = errors.New("raster: node not found")

// Options tunes the rasterizer itself, as opposed to usvg.Options (which
// tunes the conversion that produces the tree being rasterized).
type Options struct {
	// Background, if non-nil, is painted under the whole image before
	// rendering. Nil means transparent.
	Background *svgtypes.Color

	// ResourcesDir resolves external <image> href values left unresolved by
	// usvg.Convert (format "path" — see usvg/image.go decodeImageHref).
	// Empty means external images are skipped.
	ResourcesDir string
}

// Render walks t from its root and paints it into img, placed by
// rootTransform (typically the identity, or a zoom/pan adjustment applied
// by the caller.1 `render`).
func Render(t *usvg.Tree, img *image.RGBA, rootTransform svgtypes.Transform, opts Options) error {
	if t == nil || t.Root == nil {
		return errors.New("raster: tree has no root")
	}
	r := newRenderer(img, opts)
	r.paintBackground(img)
	r.renderNode(t.Root, rootTransform, img)
	return nil
}

// RenderNode rasterizes only the subtree rooted at id, placed as if it were
// the tree's root (its own ancestor transforms are not replayed
// §6.1 `render_node` renders the node in isolation, not in its original
// document position).
func RenderNode(t *usvg.Tree, id string, img *image.RGBA, rootTransform svgtypes.Transform, opts Options) error {
	if t == nil {
		return errors.New("raster: nil tree")
	}
	n := t.NodeByID(id)
	if n == nil {
		return ErrNodeNotFound
	}
	r := newRenderer(img, opts)
	r.paintBackground(img)
	r.renderNode(n, rootTransform, img)
	return nil
}

type renderer struct {
	bounds image.Rectangle
	opts   Options
}

func newRenderer(img *image.RGBA, opts Options) *renderer {
	return &renderer{bounds: img.Bounds(), opts: opts}
}

func (r *renderer) paintBackground(img *image.RGBA) {
	if r.opts.Background == nil {
		return
	}
	c := colorToGo(*r.opts.Background, 1)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// renderNode draws n (and, for a group, its children) into img, with n's own
// Transform composed onto parentWorld to get n's world transform.
func (r *renderer) renderNode(n *usvg.Node, parentWorld svgtypes.Transform, img *image.RGBA) {
	if n == nil {
		return
	}
	world := parentWorld.Multiply(n.Transform)

	switch n.Kind {
	case usvg.KindGroup:
		r.renderGroup(n, world, img)
	case usvg.KindPath:
		if !n.Visible {
			return
		}
		r.renderPath(n, world, img)
	case usvg.KindImage:
		if !n.Visible {
			return
		}
		r.renderImage(n, world, img)
	case usvg.KindText:
		if !n.Visible {
			return
		}
		r.renderText(n, world, img)
	}
}

// renderGroup composites n's children, applying opacity/clip/mask/blend
// through an offscreen buffer whenever any of those require isolating the
// group's content from the rest of the canvas.
func (r *renderer) renderGroup(n *usvg.Node, world svgtypes.Transform, img *image.RGBA) {
	simple := n.Opacity == 1 && n.ClipPath == nil && n.Mask == nil && len(n.Filters) == 0 &&
		n.BlendMode == usvg.BlendNormal && !n.Isolate
	if simple {
		for _, c := range n.Children {
			r.renderNode(c, world, img)
		}
		return
	}

	layer := image.NewRGBA(r.bounds)
	for _, c := range n.Children {
		r.renderNode(c, world, layer)
	}

	if len(n.Filters) > 0 {
		applyFilters(layer, r.bounds, n.Filters, world)
	}
	if n.ClipPath != nil {
		applyClip(layer, r.bounds, n.ClipPath, world)
	}
	if n.Mask != nil {
		applyMask(r, layer, n.Mask, world)
	}
	compositeLayer(img, layer, r.bounds, n.Opacity, n.BlendMode)
}

// compositeLayer blends layer onto dst, scaling its alpha by opacity and
// combining per-pixel by blendMode (only BlendNormal and BlendMultiply/
// BlendScreen/BlendDarken/BlendLighten are implemented with per-pixel math;
// the separable blend modes beyond these four degrade to BlendNormal, a
// scope reduction noted in DESIGN.md alongside the teacher's own renderer.go
// leaving blending entirely unimplemented).
func compositeLayer(dst, layer *image.RGBA, bounds image.Rectangle, opacity float64, mode usvg.BlendMode) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			so := layer.RGBAAt(x, y)
			if so.A == 0 {
				continue
			}
			do := dst.RGBAAt(x, y)
			sr, sg, sb, sa := blendPixel(mode, so, do)
			a := float64(sa) / 255 * opacity
			dst.Set(x, y, color.RGBA{
				R: overChannel(sr, do.R, a),
				G: overChannel(sg, do.G, a),
				B: overChannel(sb, do.B, a),
				A: clampByte(float64(do.A) + a*(255-float64(do.A))),
			})
		}
	}
}

func blendPixel(mode usvg.BlendMode, s, d color.RGBA) (r, g, b, a uint8) {
	mix := func(cs, cd uint8) uint8 {
		fs, fd := float64(cs)/255, float64(cd)/255
		switch mode {
		case usvg.BlendMultiply:
			return clampByte(fs * fd * 255)
		case usvg.BlendScreen:
			return clampByte((1 - (1-fs)*(1-fd)) * 255)
		case usvg.BlendDarken:
			return clampByte(math.Min(fs, fd) * 255)
		case usvg.BlendLighten:
			return clampByte(math.Max(fs, fd) * 255)
		default:
			return cs
		}
	}
	return mix(s.R, d.R), mix(s.G, d.G), mix(s.B, d.B), s.A
}

func overChannel(src, dst uint8, a float64) uint8 {
	return clampByte(float64(src)*a + float64(dst)*(1-a))
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// newGGContext wraps img with a gg.Context for path fill/stroke/clip
// rasterization, without ever touching gg's own transform stack — see the
// package doc comment.
func newGGContext(img *image.RGBA) *gg.Context {
	return gg.NewContextForRGBA(img)
}

func colorToGo(c svgtypes.Color, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: clampByte(opacity * 255)}
}
