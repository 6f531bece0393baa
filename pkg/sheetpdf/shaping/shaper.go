// Package shaping turns cell values into display-ready strings.
//
// Text containing Arabic-script codepoints is reshaped into contextual
// presentation forms and reordered into visual order, so that a PDF writer
// drawing glyphs strictly left to right shows it correctly. Any other text
// passes through unchanged.
package shaping

import (
	"math"
	"strconv"
	"strings"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// DateLayout is the text form of date cells.
const DateLayout = "2006-01-02 15:04:05"

// Options configures the shaper.
type Options struct {
	// KeepHarakat keeps Arabic diacritics instead of dropping them.
	// Most fonts place them poorly once letters are in presentation forms.
	KeepHarakat bool
}

// Shaper converts cells to ShapedText. It holds no mutable state and is safe
// for concurrent use.
type Shaper struct {
	opts Options
}

// New returns a Shaper.
func New(opts Options) *Shaper {
	return &Shaper{opts: opts}
}

// Shape converts a cell to display-ready text.
func (s *Shaper) Shape(c models.Cell) models.ShapedText {
	return s.ShapeString(Stringify(c))
}

// ShapeString reshapes and reorders text that contains Arabic-script
// codepoints. Other text is returned unchanged.
func (s *Shaper) ShapeString(text string) models.ShapedText {
	if Classify(text) == models.LeftToRight {
		return models.ShapedText{Text: text}
	}

	lines := splitParagraphs(text)
	lineRTL := make([]bool, len(lines))
	baseRTL, baseSet := false, false
	for i, line := range lines {
		visual, rtl := visualOrder(reshape(line, s.opts.KeepHarakat))
		lines[i], lineRTL[i] = visual, rtl
		if !baseSet && strings.TrimSpace(line) != "" {
			baseRTL, baseSet = rtl, true
		}
	}

	return models.ShapedText{
		Text:      strings.Join(lines, "\n"),
		Direction: models.RightToLeftShaped,
		BaseRTL:   baseRTL,
		LineRTL:   lineRTL,
	}
}

// ShapeGrid shapes every cell of a grid, header included. The result has
// the same dimensions as the input.
func (s *Shaper) ShapeGrid(grid models.Grid) models.ShapedGrid {
	out := make(models.ShapedGrid, len(grid))
	for r, row := range grid {
		shaped := make([]models.ShapedText, len(row))
		for c, cell := range row {
			shaped[c] = s.Shape(cell)
		}
		out[r] = shaped
	}
	return out
}

// Classify reports how text will be treated: RightToLeftShaped when it
// contains any Arabic-script codepoint, LeftToRight otherwise.
func Classify(text string) models.Direction {
	if ContainsArabic(text) {
		return models.RightToLeftShaped
	}
	return models.LeftToRight
}

// ContainsArabic reports whether text has a codepoint in the Arabic,
// Arabic Supplement or Arabic Extended-A blocks.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if isArabic(r) {
			return true
		}
	}
	return false
}

func isArabic(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF)
}

// Stringify returns the canonical text form of a cell. Empty cells and NaN
// numbers yield "". Booleans read "True" and "False".
func Stringify(c models.Cell) string {
	switch c.Kind {
	case models.CellString:
		return c.Text
	case models.CellNumber:
		return formatNumber(c.Number)
	case models.CellBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case models.CellDate:
		return c.Time.Format(DateLayout)
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case v == 0:
		return "0"
	case math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if abs := math.Abs(v); abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// splitParagraphs splits text on paragraph separators. Each paragraph is
// reordered on its own.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\u001c', '\u001d', '\u001e', '\u0085', '\u2029':
			return '\n'
		}
		return r
	}, text)
	return strings.Split(text, "\n")
}
