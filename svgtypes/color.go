package svgtypes

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Color is an sRGB 8-bit color; opacity is tracked separately on the
// attribute that carries it (fill-opacity, stroke-opacity, stop-opacity, ...).
type Color struct {
	R, G, B uint8
}

// CurrentColor is the sentinel returned for the literal `currentColor`
// keyword; the CSS engine substitutes the effective `color` property before
// this value ever reaches the render tree.
var CurrentColor = Color{}

// ParseColor parses a CSS color: a named color, a #rgb/#rrggbb hex literal,
// or an rgb()/rgba() functional notation. hsl()/hsla() are accepted too.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if s == "currentColor" || s == "currentcolor" {
		return CurrentColor, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") ||
		strings.HasPrefix(s, "hsl(") || strings.HasPrefix(s, "hsla(") {
		return parseColorFunction(s)
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	return Color{}, false
}

func parseHexColor(v string) (Color, bool) {
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6, 8:
		// ok, alpha (if present) is dropped: render-tree colors carry no
		// alpha channel, opacity is tracked on the owning property.
		v = v[:6]
	default:
		return Color{}, false
	}
	b, err := hex.DecodeString(v)
	if err != nil {
		return Color{}, false
	}
	return Color{R: b[0], G: b[1], B: b[2]}, true
}

func parseColorFunction(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	fn := s[:open]
	args := strings.Split(s[open+1:len(s)-1], ",")
	if len(args) < 3 {
		return Color{}, false
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	parseComponent := func(v string) uint8 {
		v = strings.TrimSpace(v)
		if strings.HasSuffix(v, "%") {
			n, _ := strconv.ParseFloat(v[:len(v)-1], 64)
			return clampByte(n * 255.0 / 100.0)
		}
		n, _ := strconv.ParseFloat(v, 64)
		return clampByte(n)
	}

	switch fn {
	case "rgb", "rgba":
		return Color{R: parseComponent(args[0]), G: parseComponent(args[1]), B: parseComponent(args[2])}, true
	case "hsl", "hsla":
		h, _ := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		s, _ := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
		l, _ := strconv.ParseFloat(strings.TrimSuffix(args[2], "%"), 64)
		r, g, b := hslToRGB(h/360.0, s/100.0, l/100.0)
		return Color{R: r, G: g, B: b}, true
	}
	return Color{}, false
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

func hueToRGB(m1, m2, h float64) uint8 {
	switch {
	case h < 0:
		h += 1
	case h > 1:
		h -= 1
	}
	switch {
	case h*6 < 1:
		return clampByte((m1 + (m2-m1)*h*6) * 255)
	case h*2 < 1:
		return clampByte(m2 * 255)
	case h*3 < 2:
		return clampByte((m1 + (m2-m1)*(2.0/3.0-h)*6) * 255)
	}
	return clampByte(m1 * 255)
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var m2 float64
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	m1 := l*2 - m2
	return hueToRGB(m1, m2, h+1.0/3.0), hueToRGB(m1, m2, h), hueToRGB(m1, m2, h-1.0/3.0)
}

// String renders the color as a canonical #rrggbb literal, used by the
// canonical-SVG writer.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
