package svg

import "strings"

// RenderingMode enumerates the optimizeSpeed/crispEdges/geometricPrecision-
// style rendering hints recognized by Options.
type RenderingMode = string

// Options configures ParseTree, mirroring resvg's usvg::Options. Zero-value fields are filled in by DefaultOptions.
type Options struct {
	// ResourcesDir is the base directory relative <image> href values
	// resolve against. Empty means external images are left unresolved.
	ResourcesDir string

	// DPI used to convert physical length units (in/cm/mm/pt/pc) to
	// user-space pixels. Range 10-4000; default 96.
	DPI float64

	// FontFamily is the fallback family used when an element specifies
	// none, or when font resolution otherwise fails. Default "Times New
	// Roman".
	FontFamily string

	// FontSize is the root font-size, in px, used when no ancestor sets
	// one. Range 1-192; default 12.
	FontSize float64

	// Languages is a comma-separated BCP-47 list consulted to resolve
	// `systemLanguage` conditionals on <switch>. Default "en".
	Languages string

	// ShapeRendering/TextRendering/ImageRendering are the document-level
	// defaults for nodes that don't set their own rendering hint.
	ShapeRendering RenderingMode
	TextRendering  RenderingMode
	ImageRendering RenderingMode

	// DefaultSizeW/DefaultSizeH is the viewport fallback used when
	// width/height are percentages and viewBox is absent. Default 100x100.
	DefaultSizeW float64
	DefaultSizeH float64
}

// DefaultOptions returns Options populated with the spec's documented
// defaults.
func DefaultOptions() Options {
	return Options{
		DPI:            96,
		FontFamily:     "Times New Roman",
		FontSize:       12,
		Languages:      "en",
		ShapeRendering: "geometricPrecision",
		TextRendering:  "optimizeLegibility",
		ImageRendering: "optimizeQuality",
		DefaultSizeW:   100,
		DefaultSizeH:   100,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.DPI <= 0 {
		o.DPI = def.DPI
	}
	if o.FontFamily == "" {
		o.FontFamily = def.FontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.Languages == "" {
		o.Languages = def.Languages
	}
	if o.ShapeRendering == "" {
		o.ShapeRendering = def.ShapeRendering
	}
	if o.TextRendering == "" {
		o.TextRendering = def.TextRendering
	}
	if o.ImageRendering == "" {
		o.ImageRendering = def.ImageRendering
	}
	if o.DefaultSizeW <= 0 {
		o.DefaultSizeW = def.DefaultSizeW
	}
	if o.DefaultSizeH <= 0 {
		o.DefaultSizeH = def.DefaultSizeH
	}
	return o
}

func (o Options) languageList() []string {
	var out []string
	for _, lang := range strings.Split(o.Languages, ",") {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			out = append(out, lang)
		}
	}
	if len(out) == 0 {
		out = []string{"en"}
	}
	return out
}
