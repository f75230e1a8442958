package svgtypes

import (
	"math"
	"strconv"
	"strings"
)

// Transform is a 2D affine matrix [a c e; b d f; 0 0 1], applied to a point
// as x' = a*x + c*y + e, y' = b*x + d*y + f.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Transform{A: 1, D: 1}

// IsIdentity reports whether t is (bit-for-bit) the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// IsFinite reports whether every component of t is finite.
func (t Transform) IsFinite() bool {
	for _, v := range []float64{t.A, t.B, t.C, t.D, t.E, t.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsDegenerate reports whether t collapses either axis to zero scale, per
// the invariant in ("non-degenerate scale").
func (t Transform) IsDegenerate() bool {
	sx := math.Hypot(t.A, t.B)
	sy := math.Hypot(t.C, t.D)
	return sx == 0 || sy == 0
}

// Multiply returns t composed with other, i.e. applying other first then t
// (other ∘ t in row-vector convention: p' = p * other * t).
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// Apply transforms a point by t.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Translate, Scale and Rotate build primitive transforms.
func Translate(tx, ty float64) Transform { return Transform{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float64) Transform     { return Transform{A: sx, D: sy} }
func Rotate(deg float64) Transform {
	r := deg * math.Pi / 180
	return Transform{A: math.Cos(r), B: math.Sin(r), C: -math.Sin(r), D: math.Cos(r)}
}
func SkewX(deg float64) Transform { return Transform{A: 1, D: 1, C: math.Tan(deg * math.Pi / 180)} }
func SkewY(deg float64) Transform { return Transform{A: 1, D: 1, B: math.Tan(deg * math.Pi / 180)} }

// ParseTransform parses the SVG `transform` attribute grammar: a
// whitespace/comma separated list of matrix()/translate()/scale()/
// rotate()/skewX()/skewY() functions, composed left to right.
func ParseTransform(s string) (Transform, error) {
	t := Identity
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			break
		}
		name := strings.TrimSpace(s[:open])
		close := strings.IndexByte(s[open:], ')')
		if close < 0 {
			break
		}
		close += open
		args, err := parseFloatList(s[open+1 : close])
		if err != nil {
			return Identity, err
		}

		var fn Transform
		switch name {
		case "matrix":
			if len(args) == 6 {
				fn = Transform{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
			}
		case "translate":
			switch len(args) {
			case 1:
				fn = Translate(args[0], 0)
			case 2:
				fn = Translate(args[0], args[1])
			}
		case "scale":
			switch len(args) {
			case 1:
				fn = Scale(args[0], args[0])
			case 2:
				fn = Scale(args[0], args[1])
			}
		case "rotate":
			switch len(args) {
			case 1:
				fn = Rotate(args[0])
			case 3:
				fn = Translate(args[1], args[2]).Multiply(Rotate(args[0])).Multiply(Translate(-args[1], -args[2]))
			}
		case "skewX":
			if len(args) == 1 {
				fn = SkewX(args[0])
			}
		case "skewY":
			if len(args) == 1 {
				fn = SkewY(args[0])
			}
		default:
			fn = Identity
		}
		t = t.Multiply(fn)
		s = strings.TrimSpace(s[close+1:])
		s = strings.TrimLeft(s, ", \t\n\r")
	}
	return t, nil
}

func parseFloatList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
