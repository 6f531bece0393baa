package parser

import (
	"bytes"
	"fmt"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/extrame/xls"
)

// xlsStrategy reads legacy BIFF workbooks.
type xlsStrategy struct {
	wb    *xls.WorkBook
	names []string
}

func openXLS(data []byte) (s *xlsStrategy, err error) {
	defer recoverParse("", &err)

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: empty compound document", ErrUnknownFormat)
	}

	s = &xlsStrategy{wb: wb}
	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil {
			s.names = append(s.names, sheet.Name)
		} else {
			s.names = append(s.names, fmt.Sprintf("Sheet%d", i+1))
		}
	}
	return s, nil
}

func (s *xlsStrategy) Name() string { return StrategyXLS }

func (s *xlsStrategy) SheetNames() []string { return s.names }

func (s *xlsStrategy) Close() error { return nil }

// ReadSheet extracts the sheet at index. Values arrive as formatted text
// and are typed by parsing.
func (s *xlsStrategy) ReadSheet(index int, sheetName string) (grid models.Grid, err error) {
	defer recoverParse(sheetName, &err)

	if index < 0 || index >= len(s.names) {
		return nil, ErrSheetIndex
	}
	sheet := s.wb.GetSheet(index)
	if sheet == nil {
		return nil, fmt.Errorf("sheet %q could not be loaded", sheetName)
	}

	maxRow := int(sheet.MaxRow)
	grid = make(models.Grid, 0, maxRow+1)
	for r := 0; r <= maxRow; r++ {
		row := rowAt(sheet, r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]models.Cell, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = parseValue(row.Col(c))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// rowAt returns row r, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences the missing row and panics.
func rowAt(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}

// recoverParse converts a panic inside a third-party parser into an error.
func recoverParse(sheetName string, err *error) {
	if r := recover(); r != nil {
		if sheetName == "" {
			*err = fmt.Errorf("parser panic: %v", r)
			return
		}
		*err = fmt.Errorf("parser panic in sheet %q: %v", sheetName, r)
	}
}
