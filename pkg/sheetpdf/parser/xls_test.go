package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestXLSReadsTypedCells(t *testing.T) {
	data := readFixture(t, "report.xls")

	s, format, err := OpenDefault(data)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, FormatXLS, format)
	assert.Equal(t, StrategyXLS, s.Name())
	assert.Equal(t, []string{"المبيعات", "Empty"}, s.SheetNames())

	grid, err := s.ReadSheet(0, "المبيعات")
	require.NoError(t, err)
	assert.Equal(t, models.Grid{
		{models.StringCell("الاسم"), models.StringCell("العمر"), models.StringCell("Price"), models.StringCell("Note")},
		{models.StringCell("محمد"), models.NumberCell(30), models.NumberCell(2.5), {}},
		{models.StringCell("Ali"), models.NumberCell(41), models.NumberCell(1250.75), models.StringCell("ok")},
	}, grid)
}

func TestXLSSheetWithoutRows(t *testing.T) {
	s, err := OpenPrimary(FormatXLS, readFixture(t, "report.xls"), Options{})
	require.NoError(t, err)
	defer s.Close()

	grid, err := s.ReadSheet(1, "Empty")
	require.NoError(t, err)
	assert.True(t, grid.IsEmpty())
}

func TestXLSSheetIndexOutOfRange(t *testing.T) {
	s, err := OpenPrimary(FormatXLS, readFixture(t, "report.xls"), Options{})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ReadSheet(5, "Missing")
	assert.ErrorIs(t, err, ErrSheetIndex)
}
