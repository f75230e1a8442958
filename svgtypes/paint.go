package svgtypes

import "strings"

// PaintKind discriminates the shape of a Paint value.
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintReference // url(#id), with an optional fallback color
)

// Paint is the parsed form of a fill/stroke/stop-color/flood-color/
// lighting-color value: none, a solid color, or a paint-server reference
// with an optional fallback.
type Paint struct {
	Kind     PaintKind
	Color    Color
	Ref      string // fragment id, without '#'
	Fallback *Color
}

// ParsePaint parses a fill/stroke value: "none", "currentColor", a color, or
// "url(#id)" optionally followed by a fallback ("url(#id) red").
func ParsePaint(s string) Paint {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return Paint{Kind: PaintNone}
	}

	if strings.HasPrefix(s, "url(") {
		close := strings.IndexByte(s, ')')
		if close < 0 {
			return Paint{Kind: PaintNone}
		}
		ref := strings.Trim(strings.TrimSpace(s[4:close]), "'\"")
		ref = strings.TrimPrefix(ref, "#")
		rest := strings.TrimSpace(s[close+1:])
		p := Paint{Kind: PaintReference, Ref: ref}
		if rest != "" && rest != "none" {
			if c, ok := ParseColor(rest); ok {
				p.Fallback = &c
			}
		}
		return p
	}

	if c, ok := ParseColor(s); ok {
		return Paint{Kind: PaintColor, Color: c}
	}
	return Paint{Kind: PaintNone}
}

// FillRule / LineCap / LineJoin enumerate the closed-set stroke/fill style
// properties from §3.2.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// PaintOrder distinguishes the two paint-order permutations the spec models
// (§4.5): fill-then-stroke (default) or stroke-then-fill, each optionally
// followed by markers either first or last.
type PaintOrder int

const (
	PaintOrderFillStrokeMarkers PaintOrder = iota
	PaintOrderStrokeFillMarkers
	PaintOrderMarkersFirst
)

// SpreadMethod is the gradient spreadMethod.
type SpreadMethod int

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)
