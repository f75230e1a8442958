// Command svgrender rasterizes an SVG document to PNG, or reports per-node
// metadata via --query-all. Flags mirror svg.Options plus the
// rendering knobs (size/zoom/background/export area) that aren't part of the
// library's configuration. Canonical SVG serialization is a library-only
// surface (svg.Tree.WriteSVG); the CLI spec doesn't call for exposing it.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"sort"
	"time"

	svg "github.com/pgavlin/svgrender"
	"github.com/pgavlin/svgrender/raster"
	"github.com/pgavlin/svgrender/svgtypes"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("svgrender", flag.ContinueOnError)

	var (
		stdout         bool
		width, height  int
		zoom           float64
		background     string
		queryAll       bool
		exportID       string
		exportAreaPage bool
		exportAreaDraw bool
		perf           bool
		quiet          bool

		resourcesDir   string
		dpi            float64
		fontFamily     string
		fontSize       float64
		languages      string
		shapeRendering string
		textRendering  string
		imageRendering string
		defaultW       float64
		defaultH       float64
	)

	alias := func(v *int, name, short string, def int, usage string) {
		fs.IntVar(v, name, def, usage)
		fs.IntVar(v, short, def, usage+" (shorthand)")
	}
	aliasF := func(v *float64, name, short string, def float64, usage string) {
		fs.Float64Var(v, name, def, usage)
		fs.Float64Var(v, short, def, usage+" (shorthand)")
	}

	fs.BoolVar(&stdout, "c", false, "write output to stdout")
	alias(&width, "width", "w", 0, "output width in pixels (default: intrinsic document width)")
	alias(&height, "height", "h", 0, "output height in pixels (default: intrinsic document height)")
	aliasF(&zoom, "zoom", "z", 1, "uniform scale factor applied on top of width/height")
	fs.StringVar(&background, "background", "", "background color painted under the image, e.g. #ffffff")
	fs.BoolVar(&queryAll, "query-all", false, "print id,x,y,width,height for every node with a non-empty id, then exit")
	fs.StringVar(&exportID, "export-id", "", "render only the subtree rooted at this node id")
	fs.BoolVar(&exportAreaPage, "export-area-page", false, "crop the output to the document's viewport (default)")
	fs.BoolVar(&exportAreaDraw, "export-area-drawing", false, "crop the output to the bounding box of what's actually drawn")
	fs.BoolVar(&perf, "perf", false, "print parse/convert/render timings and a Tree.Dump of the render tree to stderr")
	fs.BoolVar(&quiet, "quiet", false, "suppress non-error output")

	fs.StringVar(&resourcesDir, "resources-dir", "", "base directory for resolving relative image hrefs")
	fs.Float64Var(&dpi, "dpi", 0, "dots per inch, 10-4000 (default 96)")
	fs.StringVar(&fontFamily, "font-family", "", `fallback font family (default "Times New Roman")`)
	fs.Float64Var(&fontSize, "font-size", 0, "fallback font size in px, 1-192 (default 12)")
	fs.StringVar(&languages, "languages", "", `comma-separated BCP-47 list for systemLanguage (default "en")`)
	fs.StringVar(&shapeRendering, "shape-rendering", "", "optimizeSpeed|crispEdges|geometricPrecision")
	fs.StringVar(&textRendering, "text-rendering", "", "optimizeSpeed|optimizeLegibility|geometricPrecision")
	fs.StringVar(&imageRendering, "image-rendering", "", "optimizeQuality|optimizeSpeed")
	fs.Float64Var(&defaultW, "default-width", 0, "viewport fallback width (default 100)")
	fs.Float64Var(&defaultH, "default-height", 0, "viewport fallback height (default 100)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()

	var inPath, outPath string
	switch len(rest) {
	case 0:
		inPath, outPath = "-", "-"
	case 1:
		inPath, outPath = rest[0], "-"
	case 2:
		inPath, outPath = rest[0], rest[1]
	default:
		return fmt.Errorf("usage: svgrender [flags] <in-svg> <out-png>")
	}
	if stdout {
		outPath = "-"
	}

	opts := svg.DefaultOptions()
	opts.ResourcesDir = resourcesDir
	if dpi > 0 {
		opts.DPI = dpi
	}
	if fontFamily != "" {
		opts.FontFamily = fontFamily
	}
	if fontSize > 0 {
		opts.FontSize = fontSize
	}
	if languages != "" {
		opts.Languages = languages
	}
	if shapeRendering != "" {
		opts.ShapeRendering = shapeRendering
	}
	if textRendering != "" {
		opts.TextRendering = textRendering
	}
	if imageRendering != "" {
		opts.ImageRendering = imageRendering
	}
	if defaultW > 0 {
		opts.DefaultSizeW = defaultW
	}
	if defaultH > 0 {
		opts.DefaultSizeH = defaultH
	}

	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	parseStart := time.Now()
	tree, err := svg.ParseTree(in, opts)
	if err != nil {
		return err
	}
	parseElapsed := time.Since(parseStart)

	if !quiet {
		for _, w := range tree.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
		}
	}

	if queryAll {
		return runQueryAll(tree)
	}

	docW, docH := tree.GetImageSize()
	outW, outH := docW, docH
	if width > 0 {
		outW = float64(width)
	}
	if height > 0 {
		outH = float64(height)
	}
	outW *= zoom
	outH *= zoom
	if exportAreaDraw {
		if b, ok := tree.GetImageBBox(); ok {
			outW, outH = b.W*zoom, b.H*zoom
		}
	}
	if outW <= 0 || outH <= 0 {
		return fmt.Errorf("svgrender: computed output size is empty (%gx%g)", outW, outH)
	}

	sx, sy := outW/docW, outH/docH
	root := svgtypes.Transform{A: sx, D: sy}

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(outW)), int(math.Ceil(outH))))

	ropts := raster.Options{ResourcesDir: resourcesDir}
	if background != "" {
		if c, ok := svgtypes.ParseColor(background); ok {
			ropts.Background = &c
		} else {
			return fmt.Errorf("svgrender: invalid --background color %q", background)
		}
	}

	renderStart := time.Now()
	if exportID != "" {
		if err := tree.RenderNode(exportID, img, root, ropts); err != nil {
			return err
		}
	} else {
		if err := tree.Render(img, root, ropts); err != nil {
			return err
		}
	}
	renderElapsed := time.Since(renderStart)

	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return err
	}

	if perf {
		fmt.Fprintf(os.Stderr, "parse: %s render: %s\n", parseElapsed, renderElapsed)
		tree.Dump(os.Stderr)
	}
	return nil
}

func runQueryAll(tree *svg.Tree) error {
	type row struct {
		id         string
		x, y, w, h float64
	}
	var rows []row
	for _, id := range tree.AllNodeIDs() {
		b, ok := tree.GetNodeBBox(id)
		if !ok {
			continue
		}
		rows = append(rows, row{id, b.X, b.Y, b.W, b.H})
	}
	if len(rows) == 0 {
		return fmt.Errorf("svgrender: no nodes with a non-empty id")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })
	for _, r := range rows {
		fmt.Printf("%s,%.3f,%.3f,%.3f,%.3f\n", r.id, r.x, r.y, r.w, r.h)
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
