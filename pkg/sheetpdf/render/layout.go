package render

import (
	"strings"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// LandscapeThreshold is the header column count above which pages are
// laid out in landscape.
const LandscapeThreshold = 6

// Measure returns the rendered width of a string.
type Measure func(string) float64

// Orientation selects the page geometry for a table with the given number
// of header columns.
func Orientation(columns int) models.Orientation {
	if columns > LandscapeThreshold {
		return models.Landscape
	}
	return models.Portrait
}

// columnWidths fits natural column widths into the available width.
// When everything fits the natural widths are kept. Otherwise columns
// narrower than an even share keep their width and the rest split what
// remains evenly, so the result sums to avail.
func columnWidths(natural []float64, avail float64) []float64 {
	widths := make([]float64, len(natural))
	total := 0.0
	for i, w := range natural {
		widths[i] = w
		total += w
	}
	if total <= avail || len(natural) == 0 {
		return widths
	}

	pending := make([]int, len(natural))
	for i := range pending {
		pending[i] = i
	}
	remaining := avail
	for len(pending) > 0 {
		share := remaining / float64(len(pending))
		next := pending[:0]
		for _, i := range pending {
			if natural[i] <= share {
				widths[i] = natural[i]
				remaining -= natural[i]
				continue
			}
			next = append(next, i)
		}
		if len(next) == len(pending) {
			for _, i := range next {
				widths[i] = share
			}
			break
		}
		pending = next
	}
	return widths
}

// wrapText breaks shaped text into lines no wider than width. Newlines are
// explicit breaks. A line whose base direction is right-to-left is stored in
// visual order, so its logical start is the right end: it is filled from
// the right to keep the reading order across wrapped lines.
func wrapText(t models.ShapedText, width float64, measure Measure) []string {
	shaped := t.Direction == models.RightToLeftShaped

	var lines []string
	for i, para := range strings.Split(t.Text, "\n") {
		fromRight := shaped && t.LineIsRTL(i)
		lines = append(lines, wrapLine(para, width, measure, fromRight)...)
	}
	return lines
}

func wrapLine(line string, width float64, measure Measure, fromRight bool) []string {
	if measure(line) <= width {
		return []string{line}
	}

	words := strings.Fields(line)
	if fromRight {
		reverse(words)
	}

	var (
		lines []string
		cur   []string
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if fromRight {
			reverse(cur)
		}
		lines = append(lines, strings.Join(cur, " "))
		cur = nil
	}

	for _, word := range words {
		if len(cur) > 0 && measure(strings.Join(cur, " ")+" "+word) > width {
			flush()
		}
		if measure(word) > width {
			flush()
			pieces := breakWord(word, width, measure, fromRight)
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = []string{pieces[len(pieces)-1]}
			continue
		}
		cur = append(cur, word)
	}
	flush()
	return lines
}

// breakWord splits a word wider than width into pieces, taken from the
// right end when fromRight is set. Every piece holds at least one rune.
func breakWord(word string, width float64, measure Measure, fromRight bool) []string {
	runes := []rune(word)
	var pieces []string

	if !fromRight {
		for start := 0; start < len(runes); {
			end := start + 1
			for end < len(runes) && measure(string(runes[start:end+1])) <= width {
				end++
			}
			pieces = append(pieces, string(runes[start:end]))
			start = end
		}
		return pieces
	}

	for end := len(runes); end > 0; {
		start := end - 1
		for start > 0 && measure(string(runes[start-1:end])) <= width {
			start--
		}
		pieces = append(pieces, string(runes[start:end]))
		end = start
	}
	return pieces
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
