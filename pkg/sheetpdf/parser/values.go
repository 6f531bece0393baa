package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// parseValue types a raw cell string.
// Integers and decimals become numeric cells, everything else stays text.
func parseValue(s string) models.Cell {
	if s == "" {
		return models.Cell{}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberCell(float64(i))
	}
	// ParseFloat accepts "NaN" and "Inf"; keep those as text.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "nNiI") {
		return models.NumberCell(f)
	}
	return models.StringCell(s)
}

// builtinDateFormats holds the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

var bracketed = regexp.MustCompile(`\[.*?\]`)

var nonDateFormats = map[string]bool{
	"general": true,
	"@":       true,
}

// isDateFormatCode reports whether a custom number format renders a date.
// Quoted text and escaped characters are ignored; a format is a date format
// when it uses any of ymdhs and none of the digit placeholders.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, escaped := false, false
	for _, c := range code {
		switch {
		case escaped:
			escaped = false
		case quoted:
			if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
		case c == '\\' || c == '_' || c == '*':
			escaped = true
		case strings.ContainsRune("$-+/():, ", c):
		default:
			b.WriteRune(c)
		}
	}
	reduced := bracketed.ReplaceAllString(b.String(), "")
	if nonDateFormats[strings.ToLower(reduced)] {
		return false
	}
	dates, nums := 0, 0
	for _, c := range reduced {
		switch c {
		case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
			dates++
		case '0', '#', '?':
			nums++
		}
	}
	return dates > 0 && nums == 0
}
