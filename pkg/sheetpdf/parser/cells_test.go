package parser

import (
	"testing"
	"time"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a small xlsx workbook and returns its bytes.
func buildWorkbook(t *testing.T, fill func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fill(f)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write test workbook: %v", err)
	}
	return buf.Bytes()
}

func TestXLSXReadSheet(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Header1")
		f.SetCellValue("Sheet1", "B1", "Header2")
		f.SetCellValue("Sheet1", "A2", 100)
		f.SetCellValue("Sheet1", "B2", 200.5)
		f.SetCellValue("Sheet1", "A3", true)
		f.SetCellValue("Sheet1", "B3", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	})

	s, err := OpenPrimary(FormatXLSX, data, Options{})
	if err != nil {
		t.Fatalf("OpenPrimary failed: %v", err)
	}
	defer s.Close()

	if s.Name() != StrategyXLSX {
		t.Errorf("Expected strategy %q, got %q", StrategyXLSX, s.Name())
	}

	grid, err := s.ReadSheet(0, "Sheet1")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(grid))
	}

	if grid[0][0] != models.StringCell("Header1") {
		t.Errorf("Expected 'Header1', got %+v", grid[0][0])
	}
	if grid[1][0] != models.NumberCell(100) {
		t.Errorf("Expected number 100, got %+v", grid[1][0])
	}
	if grid[1][1] != models.NumberCell(200.5) {
		t.Errorf("Expected number 200.5, got %+v", grid[1][1])
	}
	if grid[2][0] != models.BoolCell(true) {
		t.Errorf("Expected bool true, got %+v", grid[2][0])
	}

	date := grid[2][1]
	if date.Kind != models.CellDate {
		t.Fatalf("Expected date cell, got %s", date.Kind)
	}
	if y, m, d := date.Time.Date(); y != 2024 || m != time.March || d != 15 {
		t.Errorf("Expected 2024-03-15, got %v", date.Time)
	}
}

func TestXLSXStreamReadSheet(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "A3", 42)
	})

	s, format, err := OpenDefault(data)
	if err != nil {
		t.Fatalf("OpenDefault failed: %v", err)
	}
	defer s.Close()

	if format != FormatXLSX || s.Name() != StrategyXLSXStream {
		t.Errorf("Expected xlsx stream strategy, got %s/%s", format, s.Name())
	}

	grid, err := s.ReadSheet(0, "Sheet1")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("Expected 3 rows including the blank one, got %d", len(grid))
	}
	if grid[0][0] != models.StringCell("Name") {
		t.Errorf("Expected 'Name', got %+v", grid[0][0])
	}
	if len(grid[1]) != 0 {
		t.Errorf("Expected blank second row, got %+v", grid[1])
	}
	if grid[2][0] != models.NumberCell(42) {
		t.Errorf("Expected number 42, got %+v", grid[2][0])
	}
}

func TestXLSXMissingSheet(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {})

	s, err := OpenPrimary(FormatXLSX, data, Options{})
	if err != nil {
		t.Fatalf("OpenPrimary failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ReadSheet(3, "Nope"); err == nil {
		t.Error("Expected error for unknown sheet")
	}
}

func TestXLSXRespectPrintArea(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		for _, ref := range []string{"A1", "B1", "C1", "A2", "B2", "C2", "A3"} {
			f.SetCellValue("Sheet1", ref, ref)
		}
		if err := f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: "Sheet1!$A$1:$B$2",
			Scope:    "Sheet1",
		}); err != nil {
			t.Fatalf("SetDefinedName failed: %v", err)
		}
	})

	s, err := OpenPrimary(FormatXLSX, data, Options{RespectPrintArea: true})
	if err != nil {
		t.Fatalf("OpenPrimary failed: %v", err)
	}
	defer s.Close()

	grid, err := s.ReadSheet(0, "Sheet1")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("Expected 2x2 grid, got %v", grid)
	}
	if grid[1][1] != models.StringCell("B2") {
		t.Errorf("Expected 'B2', got %+v", grid[1][1])
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Cell
	}{
		{"123", models.NumberCell(123)},
		{"123.45", models.NumberCell(123.45)},
		{"-100", models.NumberCell(-100)},
		{"hello", models.StringCell("hello")},
		{"NaN", models.StringCell("NaN")},
		{"", models.Cell{}},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"yyyy-mm-dd", true},
		{"d/m/yy h:mm", true},
		{"[$-409]mmmm d, yyyy", true},
		{"0.00", false},
		{"#,##0", false},
		{"General", false},
		{"@", false},
		{`"day" 0`, false},
	}

	for _, tt := range tests {
		if got := isDateFormatCode(tt.code); got != tt.expected {
			t.Errorf("isDateFormatCode(%q) = %v, expected %v", tt.code, got, tt.expected)
		}
	}
}
