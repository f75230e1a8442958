package svgtypes

import (
	"math"
	"strconv"
	"strings"
)

// SegmentKind discriminates a Path segment. Every curved input (quadratic
// Bezier, elliptical arc) is converted to cubic Beziers during parsing, so
// the final path only ever contains these four kinds — see
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCubicTo
	SegClose
)

// Segment is one absolute path command. For SegCubicTo, (X1,Y1) and (X2,Y2)
// are the control points and (X,Y) is the end point; for SegMoveTo/SegLineTo
// only (X,Y) is meaningful.
type Segment struct {
	Kind           SegmentKind
	X, Y           float64
	X1, Y1, X2, Y2 float64
}

// Path is an ordered sequence of absolute segments. A valid path has at
// least two segments and starts with a MoveTo.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(x, y float64) { p.Segments = append(p.Segments, Segment{Kind: SegMoveTo, X: x, Y: y}) }
func (p *Path) LineTo(x, y float64) { p.Segments = append(p.Segments, Segment{Kind: SegLineTo, X: x, Y: y}) }
func (p *Path) CubicTo(x1, y1, x2, y2, x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: SegCubicTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}
func (p *Path) Close() { p.Segments = append(p.Segments, Segment{Kind: SegClose}) }

// Valid reports whether p satisfies the render-tree path invariant.
func (p *Path) Valid() bool {
	return len(p.Segments) >= 2 && p.Segments[0].Kind == SegMoveTo
}

// Bounds returns the axis-aligned bounding box of p's on-curve and
// control points (a conservative but cheap bbox; good enough for fill/
// clip-region estimates, not for tight stroke bounds).
func (p *Path) Bounds() Rect {
	var minX, minY, maxX, maxY float64
	first := true
	consider := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY, first = x, x, y, y, false
			return
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, s := range p.Segments {
		switch s.Kind {
		case SegMoveTo, SegLineTo:
			consider(s.X, s.Y)
		case SegCubicTo:
			consider(s.X1, s.Y1)
			consider(s.X2, s.Y2)
			consider(s.X, s.Y)
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// conicConstant approximates a quarter circle with a single cubic Bezier;
// used for rounded rect corners.
const conicConstant = 0.5522847498

// AppendEllipticalArc converts the quarter/half/full-circle approximation of
// a corner arc centered at (cx,cy) with radii (rx,ry) from startDeg to
// endDeg into cubic segments appended to p. Sign of the sweep follows
// endDeg-startDeg.
func (p *Path) AppendEllipticalArc(cx, cy, rx, ry, startDeg, endDeg float64) {
	start := startDeg * math.Pi / 180
	end := endDeg * math.Pi / 180
	sweep := end - start
	segs := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if segs == 0 {
		segs = 1
	}
	step := sweep / float64(segs)
	k := conicConstant

	for i := 0; i < segs; i++ {
		a0 := start + step*float64(i)
		a1 := a0 + step
		x0, y0 := cx+rx*math.Cos(a0), cy+ry*math.Sin(a0)
		x1, y1 := cx+rx*math.Cos(a1), cy+ry*math.Sin(a1)

		t := k * math.Tan(step/4.0) / math.Tan(math.Pi/8) // k scaled from a 90° step to this one
		c1x := x0 - t*rx*math.Sin(a0)
		c1y := y0 + t*ry*math.Cos(a0)
		c2x := x1 + t*rx*math.Sin(a1)
		c2y := y1 - t*ry*math.Cos(a1)

		p.CubicTo(c1x, c1y, c2x, c2y, x1, y1)
	}
}

// ParsePathData parses the `d` attribute grammar into an absolute Path,
// converting relative commands, smooth-curve reflection, quadratic Beziers
// and elliptical arcs into absolute cubic segments as it goes.
func ParsePathData(d string) Path {
	toks := tokenizePath(d)
	i := 0
	var path Path

	var cx, cy float64       // current point
	var startX, startY float64
	var prevCtrlX, prevCtrlY float64
	var prevCmd byte

	readNum := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}
	readFlag := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v := toks[i]
		i++
		if v == "0" {
			return 0, true
		}
		if v == "1" {
			return 1, true
		}
		return 0, false
	}

	var cmd byte
	for i < len(toks) {
		tok := toks[i]
		if len(tok) == 1 && isCommandLetter(tok[0]) {
			cmd = tok[0]
			i++
		}
		// else: repeat previous command (implicit repetition)

		rel := cmd >= 'a' && cmd <= 'z'
		upper := cmd &^ 0x20

		switch upper {
		case 'M':
			x, ok1 := readNum()
			y, ok2 := readNum()
			if !ok1 || !ok2 {
				i = len(toks)
				break
			}
			if rel && len(path.Segments) > 0 {
				x, y = cx+x, cy+y
			}
			path.MoveTo(x, y)
			cx, cy = x, y
			startX, startY = x, y
			cmd = byte('L' + (cmd - 'M')) // subsequent bare coordinate pairs are implicit lineto
		case 'L':
			x, ok1 := readNum()
			y, ok2 := readNum()
			if !ok1 || !ok2 {
				i = len(toks)
				break
			}
			if rel {
				x, y = cx+x, cy+y
			}
			path.LineTo(x, y)
			cx, cy = x, y
		case 'H':
			x, ok := readNum()
			if !ok {
				i = len(toks)
				break
			}
			if rel {
				x = cx + x
			}
			path.LineTo(x, cy)
			cx = x
		case 'V':
			y, ok := readNum()
			if !ok {
				i = len(toks)
				break
			}
			if rel {
				y = cy + y
			}
			path.LineTo(cx, y)
			cy = y
		case 'C':
			x1, a1 := readNum()
			y1, a2 := readNum()
			x2, a3 := readNum()
			y2, a4 := readNum()
			x, a5 := readNum()
			y, a6 := readNum()
			if !(a1 && a2 && a3 && a4 && a5 && a6) {
				i = len(toks)
				break
			}
			if rel {
				x1, y1, x2, y2, x, y = cx+x1, cy+y1, cx+x2, cy+y2, cx+x, cy+y
			}
			path.CubicTo(x1, y1, x2, y2, x, y)
			cx, cy, prevCtrlX, prevCtrlY = x, y, x2, y2
		case 'S':
			x2, a1 := readNum()
			y2, a2 := readNum()
			x, a3 := readNum()
			y, a4 := readNum()
			if !(a1 && a2 && a3 && a4) {
				i = len(toks)
				break
			}
			if rel {
				x2, y2, x, y = cx+x2, cy+y2, cx+x, cy+y
			}
			var x1, y1 float64
			if prevUpper(prevCmd) == 'C' || prevUpper(prevCmd) == 'S' {
				x1, y1 = 2*cx-prevCtrlX, 2*cy-prevCtrlY
			} else {
				x1, y1 = cx, cy
			}
			path.CubicTo(x1, y1, x2, y2, x, y)
			cx, cy, prevCtrlX, prevCtrlY = x, y, x2, y2
		case 'Q':
			x1, a1 := readNum()
			y1, a2 := readNum()
			x, a3 := readNum()
			y, a4 := readNum()
			if !(a1 && a2 && a3 && a4) {
				i = len(toks)
				break
			}
			if rel {
				x1, y1, x, y = cx+x1, cy+y1, cx+x, cy+y
			}
			c1x, c1y, c2x, c2y := quadToCubic(cx, cy, x1, y1, x, y)
			path.CubicTo(c1x, c1y, c2x, c2y, x, y)
			cx, cy, prevCtrlX, prevCtrlY = x, y, x1, y1
		case 'T':
			x, a1 := readNum()
			y, a2 := readNum()
			if !(a1 && a2) {
				i = len(toks)
				break
			}
			if rel {
				x, y = cx+x, cy+y
			}
			var x1, y1 float64
			if prevUpper(prevCmd) == 'Q' || prevUpper(prevCmd) == 'T' {
				x1, y1 = 2*cx-prevCtrlX, 2*cy-prevCtrlY
			} else {
				x1, y1 = cx, cy
			}
			c1x, c1y, c2x, c2y := quadToCubic(cx, cy, x1, y1, x, y)
			path.CubicTo(c1x, c1y, c2x, c2y, x, y)
			cx, cy, prevCtrlX, prevCtrlY = x, y, x1, y1
		case 'A':
			rx, a1 := readNum()
			ry, a2 := readNum()
			rot, a3 := readNum()
			large, a4 := readFlag()
			sweep, a5 := readFlag()
			x, a6 := readNum()
			y, a7 := readNum()
			if !(a1 && a2 && a3 && a4 && a5 && a6 && a7) {
				i = len(toks)
				break
			}
			if rel {
				x, y = cx+x, cy+y
			}
			arcToCubics(&path, cx, cy, rx, ry, rot, large != 0, sweep != 0, x, y)
			cx, cy = x, y
		case 'Z':
			path.Close()
			cx, cy = startX, startY
		default:
			i = len(toks)
		}
		prevCmd = cmd
	}
	return path
}

func prevUpper(c byte) byte { return c &^ 0x20 }

func isCommandLetter(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// tokenizePath splits `d` into command letters and numeric tokens, handling
// the SVG path grammar's relaxed separators (commas, whitespace, and
// concatenated signed/decimal numbers with no separator at all).
func tokenizePath(d string) []string {
	var toks []string
	i := 0
	n := len(d)
	for i < n {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case isCommandLetter(c):
			toks = append(toks, string(c))
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			seenDot := c == '.'
			for j < n {
				cj := d[j]
				if cj >= '0' && cj <= '9' {
					j++
					continue
				}
				if cj == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				if (cj == 'e' || cj == 'E') && j+1 < n && (d[j+1] == '-' || d[j+1] == '+' || (d[j+1] >= '0' && d[j+1] <= '9')) {
					j += 2
					continue
				}
				break
			}
			toks = append(toks, d[i:j])
			i = j
		default:
			i++
		}
	}
	return toks
}

func quadToCubic(x0, y0, x1, y1, x, y float64) (c1x, c1y, c2x, c2y float64) {
	c1x = x0 + 2.0/3.0*(x1-x0)
	c1y = y0 + 2.0/3.0*(y1-y0)
	c2x = x + 2.0/3.0*(x1-x)
	c2y = y + 2.0/3.0*(y1-y)
	return
}

// arcToCubics implements the SVG elliptical-arc-to-cubic-Bezier endpoint
// parameterization conversion (the standard algorithm from the SVG spec
// appendix), appending the resulting cubic segments to path.
func arcToCubics(path *Path, x0, y0, rx, ry, xAxisRotationDeg float64, largeArc, sweep bool, x, y float64) {
	if rx == 0 || ry == 0 {
		path.LineTo(x, y)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := xAxisRotationDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2, dy2 := (x0-x)/2, (y0-y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	sign := 1.0
	if largeArc == sweep {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den != 0 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * -(ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (x0+x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		a := math.Acos(clamp(dot/lenProd, -1, 1))
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segs < 1 {
		segs = 1
	}
	delta := dTheta / float64(segs)
	t := 4.0 / 3.0 * math.Tan(delta/4.0)

	theta := theta1
	for i := 0; i < segs; i++ {
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		nextTheta := theta + delta
		cosN, sinN := math.Cos(nextTheta), math.Sin(nextTheta)

		p0x, p0y := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosT, sinT)
		p1x, p1y := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosN, sinN)

		dp0x, dp0y := ellipseTangent(rx, ry, cosPhi, sinPhi, cosT, sinT)
		dp1x, dp1y := ellipseTangent(rx, ry, cosPhi, sinPhi, cosN, sinN)

		c1x, c1y := p0x+t*dp0x, p0y+t*dp0y
		c2x, c2y := p1x-t*dp1x, p1y-t*dp1y

		path.CubicTo(c1x, c1y, c2x, c2y, p1x, p1y)
		theta = nextTheta
	}
}

func ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosT, sinT float64) (float64, float64) {
	return cx + rx*cosT*cosPhi - ry*sinT*sinPhi, cy + rx*cosT*sinPhi + ry*sinT*cosPhi
}

func ellipseTangent(rx, ry, cosPhi, sinPhi, cosT, sinT float64) (float64, float64) {
	return -rx*sinT*cosPhi - ry*cosT*sinPhi, -rx*sinT*sinPhi + ry*cosT*cosPhi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePoints parses the `points` attribute of polyline/polygon: a
// comma/whitespace separated coordinate-pair sequence.
func ParsePoints(s string) []Point {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	pts := make([]Point, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			break
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}
