package usvg

import "github.com/pgavlin/svgrender/svgtypes"

// ClipPath is a resolved <clipPath>: a set of shape/text children combined
// by non-zero coverage, optionally itself clipped by another ClipPath
//. Direct children other than shapes, text and groups (the form an
// expanded `use` takes) are dropped; the contents of a group child are not
// filtered again. Bare <line> children are dropped as well (zero-area, can
// never contribute coverage), matching the resolved Open Question in
// DESIGN.md.
type ClipPath struct {
	ID        string
	Units     Units
	Transform svgtypes.Transform
	Children  []*Node
	ClipPath  *ClipPath
}

// Mask is a resolved <mask>: a luminance (or alpha) mask rendered from its
// children into an offscreen region and multiplied into the group it's
// attached to.
type Mask struct {
	ID           string
	Units        Units
	ContentUnits Units
	Region       svgtypes.Rect
	Luminance    bool // true = luminance mask (default), false = alpha mask
	Children     []*Node
	Mask         *Mask
}

// Filter is a resolved <filter>: an ordered chain of primitives operating on
// named intermediate results.
type Filter struct {
	ID             string
	Region         svgtypes.Rect
	Units          Units
	PrimitiveUnits Units
	ColorInterp    ColorInterpolation
	Primitives     []FilterPrimitive
}

type ColorInterpolation int

const (
	ColorInterpLinearRGB ColorInterpolation = iota
	ColorInterpSRGB
)

func ParseColorInterpolation(s string) ColorInterpolation {
	if s == "sRGB" {
		return ColorInterpSRGB
	}
	return ColorInterpLinearRGB
}

// FilterPrimitive is one step of a filter chain. Kind-specific parameters
// are kept as their raw attribute strings rather than one Go struct per
// primitive type (feGaussianBlur's stdDeviation, feOffset's dx/dy,
// feColorMatrix's values, ...): the chain-resolution behavior they all share
// (named-input wiring, subregion, color-interpolation-filters) dominates
//, and the filter primitives other than blur/offset/flood
// are out of scope for the rasterizer (see raster/filter.go).
type FilterPrimitive struct {
	Kind      string // "feGaussianBlur", "feOffset", "feFlood", "feMerge", "feBlend", "feComposite", "feColorMatrix", "feTile", "feMorphology", "feDropShadow", "feImage", ...
	In        string // resolved named input: "SourceGraphic", "SourceAlpha", "BackgroundImage", a named prior result, or, when the source left `in` unset, the previous primitive's result (SourceGraphic for the first)
	In2       string
	Result    string // this primitive's named output, synthesized if the source left `result` unset
	Subregion svgtypes.Rect
	HasRegion bool
	Params    map[string]string
}
