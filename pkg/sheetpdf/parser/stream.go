package parser

import (
	"bytes"
	"fmt"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/xuri/excelize/v2"
)

// xlsxStreamStrategy reads xlsx sheets through the row iterator with raw
// values only. It skips style and type lookups, so it keeps working on
// sheets whose styles or shared metadata are damaged.
type xlsxStreamStrategy struct {
	f *excelize.File
}

func openXLSXStream(data []byte) (*xlsxStreamStrategy, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &xlsxStreamStrategy{f: f}, nil
}

func (s *xlsxStreamStrategy) Name() string { return StrategyXLSXStream }

func (s *xlsxStreamStrategy) SheetNames() []string { return s.f.GetSheetList() }

func (s *xlsxStreamStrategy) Close() error { return s.f.Close() }

// ReadSheet streams the sheet rows and types each value by parsing it.
func (s *xlsxStreamStrategy) ReadSheet(_ int, sheetName string) (grid models.Grid, err error) {
	defer recoverParse(sheetName, &err)

	rows, err := s.f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		cells := make([]models.Cell, len(cols))
		for i, raw := range cols {
			cells[i] = parseValue(raw)
		}
		grid = append(grid, cells)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return grid, nil
}
