package slides

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap breaks s into lines of at most width grapheme clusters. Breaks fall on
// spaces where possible; runs without spaces (Japanese text, long tokens) are
// cut at the width.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

func wrapParagraph(s string, width int) []string {
	var (
		lines   []string
		current strings.Builder
		n       int
	)
	flush := func() {
		if n > 0 {
			lines = append(lines, current.String())
		}
		current.Reset()
		n = 0
	}

	for _, word := range strings.Fields(s) {
		wn := uniseg.GraphemeClusterCount(word)

		if n > 0 && n+1+wn <= width {
			current.WriteString(" ")
			current.WriteString(word)
			n += 1 + wn
			continue
		}
		flush()

		for wn > width {
			head, rest := splitGraphemes(word, width)
			lines = append(lines, head)
			word = rest
			wn -= width
		}
		current.WriteString(word)
		n = wn
	}
	flush()
	return lines
}

// splitGraphemes returns the first n grapheme clusters of s and the remainder.
func splitGraphemes(s string, n int) (string, string) {
	end := 0
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end], s[end:]
}
