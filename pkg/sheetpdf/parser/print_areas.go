package parser

import (
	"strings"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// printAreaFor returns the first print area defined for a sheet.
func printAreaFor(f *excelize.File, sheetName string) (models.PrintArea, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheetName {
			continue
		}
		for _, ref := range splitReferences(dn.RefersTo) {
			sheet, rangeStr := splitSheetRef(ref)
			if sheet != sheetName {
				continue
			}
			if area, ok := parseRangeToArea(rangeStr); ok {
				return area, true
			}
		}
	}
	return models.PrintArea{}, false
}

// splitReferences splits a comma separated reference list, leaving commas
// inside quoted sheet names alone.
func splitReferences(refersTo string) []string {
	var (
		parts  []string
		b      strings.Builder
		quoted bool
	)
	for _, c := range strings.TrimPrefix(refersTo, "=") {
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteRune(c)
		case c == ',' && !quoted:
			parts = append(parts, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(c)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

// splitSheetRef separates 'Sheet Name'!$A$1:$D$10 into its sheet and range.
// Doubled quotes inside a quoted name are unescaped.
func splitSheetRef(ref string) (sheet, rangeStr string) {
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", ref
	}
	sheet = ref[:idx]
	if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, ref[idx+1:]
}

// parseRangeToArea parses $A$1:$D$10 into 1-based bounds.
func parseRangeToArea(rangeStr string) (models.PrintArea, bool) {
	start, end, found := strings.Cut(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if !found {
		end = start
	}

	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.PrintArea{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.PrintArea{}, false
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	return models.PrintArea{R1: r1, C1: c1, R2: r2, C2: c2}, true
}
