// Package svgtypes holds the parsed, typed representations of SVG attribute
// values: lengths, colors, transforms, paints and path data. Nothing in this
// package knows about the DOM or about CSS cascade; it only knows how to turn
// attribute text into numbers.
package svgtypes

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit suffix of a <length>.
type Unit int

const (
	UnitNone Unit = iota
	UnitEm
	UnitEx
	UnitPx
	UnitIn
	UnitCm
	UnitMm
	UnitPt
	UnitPc
	UnitPercent
)

// Length is a CSS/SVG <length>: a number plus an optional unit.
type Length struct {
	Number float64
	Unit   Unit
}

// ParseLength parses an SVG length such as "10", "10px", "50%" or "2.5em".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, errors.New("svgtypes: empty length")
	}

	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return Length{}, err
		}
		return Length{Number: n, Unit: UnitPercent}, nil
	}

	suffixes := []struct {
		s string
		u Unit
	}{
		{"px", UnitPx}, {"em", UnitEm}, {"ex", UnitEx},
		{"in", UnitIn}, {"cm", UnitCm}, {"mm", UnitMm},
		{"pt", UnitPt}, {"pc", UnitPc},
	}
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf.s) {
			n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-len(suf.s)]), 64)
			if err != nil {
				return Length{}, err
			}
			return Length{Number: n, Unit: suf.u}, nil
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Number: n, Unit: UnitNone}, nil
}

// MustParseLength parses s and returns the zero Length on error. Used for
// spec-default constants where the input is known to be well formed.
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		return Length{}
	}
	return l
}

// ResolverState carries the ambient context a length is resolved against, per
// §4.1 of the spec: DPI, the current viewport, the context font-size/ascent,
// and whether the attribute being resolved lives in objectBoundingBox space.
type ResolverState struct {
	DPI         float64
	FontSize    float64
	FontAscent  float64 // used to approximate ex when no face metric is known
	ViewportW   float64
	ViewportH   float64
	ObjectUnits bool
}

// Axis selects which viewport dimension a percentage is resolved against;
// attribute semantics (x/width vs y/height vs others) pick the axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisDiagonal
)

// diagonal implements the √((w²+h²)/2) formula from §4.1 for percentage
// lengths whose attribute is neither x/width-like nor y/height-like.
func (st ResolverState) diagonal() float64 {
	w, h := st.ViewportW, st.ViewportH
	return math.Sqrt((w*w + h*h) / 2.0)
}

// ptPerIn and pcPerPt are the physical-unit conversion constants from §4.1:
// pt = 1/72in, pc = 12pt, and DPI converts inches to user-space px.
const (
	ptPerIn = 1.0 / 72.0
	pcPerPt = 12.0
)

// Resolve converts a parsed Length into an absolute user-space float,
// following the rules in
func Resolve(l Length, axis Axis, st ResolverState) float64 {
	switch l.Unit {
	case UnitNone, UnitPx:
		return l.Number
	case UnitEm:
		return l.Number * st.FontSize
	case UnitEx:
		ascent := st.FontAscent
		if ascent == 0 {
			ascent = st.FontSize * 0.5
		}
		return l.Number * ascent
	case UnitIn:
		return l.Number * st.DPI
	case UnitCm:
		return l.Number / 2.54 * st.DPI
	case UnitMm:
		return l.Number / 25.4 * st.DPI
	case UnitPt:
		return l.Number * ptPerIn * st.DPI
	case UnitPc:
		return l.Number * pcPerPt * ptPerIn * st.DPI
	case UnitPercent:
		if st.ObjectUnits {
			return l.Number / 100.0
		}
		switch axis {
		case AxisX:
			return l.Number / 100.0 * st.ViewportW
		case AxisY:
			return l.Number / 100.0 * st.ViewportH
		default:
			return l.Number / 100.0 * st.diagonal()
		}
	}
	return l.Number
}
