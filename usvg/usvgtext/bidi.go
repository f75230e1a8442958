package usvgtext

import "golang.org/x/text/unicode/bidi"

// reorderRunes applies the Unicode Bidirectional Algorithm's paragraph-level
// reordering to one chunk's rune sequence, returning a permutation: visual[i]
// is the logical index of the rune that should be drawn at visual position
// i. Left-to-right text (by far the common case for SVG content) is an
// identity permutation; this only does real work once an RTL or mixed-
// direction run is present.
func reorderRunes(runes []rune) []int {
	identity := make([]int, len(runes))
	for i := range identity {
		identity[i] = i
	}
	if len(runes) == 0 {
		return identity
	}

	var p bidi.Paragraph
	p.SetString(string(runes))
	order, err := p.Order()
	if err != nil {
		return identity
	}

	var visual []int
	logicalOffset := 0
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		text := []rune(run.String())
		n := len(text)
		if run.Direction() == bidi.RightToLeft {
			for j := n - 1; j >= 0; j-- {
				visual = append(visual, logicalOffset+j)
			}
		} else {
			for j := 0; j < n; j++ {
				visual = append(visual, logicalOffset+j)
			}
		}
		logicalOffset += n
	}
	if len(visual) != len(runes) {
		return identity
	}
	return visual
}
