package parser

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/xuri/excelize/v2"
)

// xlsxStrategy reads xlsx sheets with full cell typing: cell types, date
// number formats and the workbook date system are honored.
type xlsxStrategy struct {
	f          *excelize.File
	date1904   bool
	opts       Options
	dateStyles map[int]bool
}

func openXLSX(data []byte, opts Options) (*xlsxStrategy, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s := &xlsxStrategy{f: f, opts: opts, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}
	return s, nil
}

func (s *xlsxStrategy) Name() string { return StrategyXLSX }

func (s *xlsxStrategy) SheetNames() []string { return s.f.GetSheetList() }

func (s *xlsxStrategy) Close() error { return s.f.Close() }

// ReadSheet extracts the typed cell grid of a sheet.
func (s *xlsxStrategy) ReadSheet(_ int, sheetName string) (grid models.Grid, err error) {
	defer recoverParse(sheetName, &err)

	rows, err := s.f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid = make(models.Grid, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = s.typedCell(sheetName, cellName, raw)
		}
		grid[rowIdx] = cells
	}

	if s.opts.RespectPrintArea {
		if area, ok := printAreaFor(s.f, sheetName); ok {
			grid = clipToArea(grid, area)
		}
	}
	return grid, nil
}

// typedCell converts a raw cell value according to its stored type.
func (s *xlsxStrategy) typedCell(sheetName, cellName, raw string) models.Cell {
	typ, err := s.f.GetCellType(sheetName, cellName)
	if err != nil {
		return parseValue(raw)
	}

	switch typ {
	case excelize.CellTypeBool:
		return models.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.StringCell(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.DateCell(t)
		}
		return models.StringCell(raw)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.StringCell(raw)
	}
	if s.isDateCell(sheetName, cellName) {
		if t, err := excelize.ExcelDateToTime(v, s.date1904); err == nil {
			return models.DateCell(t)
		}
	}
	return models.NumberCell(v)
}

// isDateCell reports whether the cell's number format renders a date.
func (s *xlsxStrategy) isDateCell(sheetName, cellName string) bool {
	styleID, err := s.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := s.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := s.f.GetStyle(styleID); err == nil && style != nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		default:
			isDate = builtinDateFormats[style.NumFmt]
		}
	}
	s.dateStyles[styleID] = isDate
	return isDate
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
