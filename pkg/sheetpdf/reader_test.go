package sheetpdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/metrics"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/parser"
)

// stubStrategy serves fixed grids and errors per sheet name.
type stubStrategy struct {
	name   string
	names  []string
	grids  map[string]models.Grid
	errs   map[string]error
	closed bool
}

func (s *stubStrategy) Name() string         { return s.name }
func (s *stubStrategy) SheetNames() []string { return s.names }
func (s *stubStrategy) Close() error         { s.closed = true; return nil }

func (s *stubStrategy) ReadSheet(_ int, name string) (models.Grid, error) {
	if err := s.errs[name]; err != nil {
		return nil, err
	}
	return s.grids[name], nil
}

func stubWorkbook(primary, fallback *stubStrategy, rec metrics.Recorder) *Workbook {
	wb := &Workbook{
		BookName: "stub.xlsx",
		Format:   parser.FormatXLSX,
		names:    fallback.names,
		fallback: fallback,
		logger:   quietLogger(),
		recorder: rec,
	}
	if primary != nil {
		wb.primary = primary
	}
	return wb
}

func TestReadFormats(t *testing.T) {
	r := NewReader(parser.Options{}, quietLogger(), nil)
	data := buildWorkbook(t, []string{"One", "اثنان"}, map[string][][]interface{}{
		"One": {{nil, nil}, {nil, "h"}, {nil, 1}},
	})

	wb, err := r.Read(data, "Book.XLSX")
	require.NoError(t, err)
	defer wb.Close()

	info := wb.Info()
	assert.Equal(t, "Book.XLSX", info.BookName)
	assert.Equal(t, "xlsx", info.Format)
	assert.Equal(t, []string{"One", "اثنان"}, info.SheetNames)

	sheet, err := wb.ReadSheet(0)
	require.NoError(t, err)
	assert.Equal(t, models.Grid{
		{models.StringCell("h")},
		{models.NumberCell(1)},
	}, sheet.Rows)

	empty, err := wb.ReadSheet(1)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = wb.ReadSheet(2)
	assert.ErrorIs(t, err, parser.ErrSheetIndex)
}

func TestReadRejectsExtensionBeforeContent(t *testing.T) {
	r := NewReader(parser.Options{}, quietLogger(), nil)

	// Valid workbook bytes are still rejected by name.
	data := buildWorkbook(t, []string{"S"}, nil)
	_, err := r.Read(data, "book.ods")
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	_, err = r.Read(data, "noext")
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestReadSheetFallsBackPerSheet(t *testing.T) {
	primaryErr := errors.New("typed read failed")
	primary := &stubStrategy{
		name:  "xlsx",
		names: []string{"Good", "Bad"},
		grids: map[string]models.Grid{"Good": {{models.StringCell("p")}}},
		errs:  map[string]error{"Bad": primaryErr},
	}
	fallback := &stubStrategy{
		name:  "xlsx-stream",
		names: []string{"Good", "Bad"},
		grids: map[string]models.Grid{
			"Good": {{models.StringCell("f")}},
			"Bad":  {{models.StringCell("rescued")}},
		},
	}
	rec := newCountingRecorder()
	wb := stubWorkbook(primary, fallback, rec)

	good, err := wb.ReadSheet(0)
	require.NoError(t, err)
	assert.Equal(t, "p", good.Rows[0][0].Text)

	bad, err := wb.ReadSheet(1)
	require.NoError(t, err)
	assert.Equal(t, "rescued", bad.Rows[0][0].Text)
	assert.Equal(t, 1, rec.fallbacks)

	require.NoError(t, wb.Close())
	assert.True(t, primary.closed)
	assert.True(t, fallback.closed)
}

func TestReadSheetBothParsersFail(t *testing.T) {
	primaryErr := errors.New("primary broke")
	fallbackErr := errors.New("fallback broke")
	primary := &stubStrategy{name: "xlsx", errs: map[string]error{"S": primaryErr}}
	fallback := &stubStrategy{name: "xlsx-stream", names: []string{"S"}, errs: map[string]error{"S": fallbackErr}}
	wb := stubWorkbook(primary, fallback, metrics.NoopRecorder{})

	_, err := wb.ReadSheet(0)

	var readErr *SheetReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "S", readErr.SheetName)
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, fallbackErr)
}

func TestReadSheetSameStrategyIsNotRetried(t *testing.T) {
	failure := errors.New("biff broke")
	only := &stubStrategy{name: "xls", names: []string{"S"}, errs: map[string]error{"S": failure}}
	rec := newCountingRecorder()
	wb := stubWorkbook(only, only, rec)

	_, err := wb.ReadSheet(0)

	var readErr *SheetReadError
	require.ErrorAs(t, err, &readErr)
	assert.Nil(t, readErr.Fallback)
	assert.Zero(t, rec.fallbacks)
}

func TestConvertSheetFailurePolicy(t *testing.T) {
	newWorkbook := func() *Workbook {
		fine := models.Grid{{models.StringCell("h")}, {models.NumberCell(1)}}
		primary := &stubStrategy{
			name:  "xlsx",
			grids: map[string]models.Grid{"Fine": fine},
			errs:  map[string]error{"Broken": errors.New("corrupt")},
		}
		fallback := &stubStrategy{
			name:  "xlsx-stream",
			names: []string{"Broken", "Fine"},
			grids: map[string]models.Grid{"Fine": fine},
			errs:  map[string]error{"Broken": errors.New("corrupt")},
		}
		return stubWorkbook(primary, fallback, metrics.NoopRecorder{})
	}

	t.Run("skip", func(t *testing.T) {
		conv := newTestConverter(t, DefaultOptions(), metrics.NoopRecorder{})

		result, err := conv.Convert(newWorkbook(), newTestWorkspace(t))
		require.NoError(t, err)
		require.Len(t, result.Documents, 1)
		assert.Equal(t, "Fine.pdf", result.Documents[0].FileName)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, models.SkipUnreadable, result.Skipped[0].Reason)
		assert.Equal(t, "Broken", result.Skipped[0].SheetName)
	})

	t.Run("abort", func(t *testing.T) {
		opts := DefaultOptions()
		opts.OnSheetFailure = SheetFailureAbort
		conv := newTestConverter(t, opts, metrics.NoopRecorder{})

		result, err := conv.Convert(newWorkbook(), newTestWorkspace(t))
		var readErr *SheetReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, "Broken", readErr.SheetName)
		assert.Nil(t, result)
	})
}

func readXLSFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("parser", "testdata", "report.xls"))
	require.NoError(t, err)
	return data
}

func TestReadLegacyWorkbook(t *testing.T) {
	r := NewReader(parser.Options{}, quietLogger(), nil)

	wb, err := r.Read(readXLSFixture(t), "book.xls")
	require.NoError(t, err)
	defer wb.Close()

	info := wb.Info()
	assert.Equal(t, "xls", info.Format)
	assert.Equal(t, []string{"المبيعات", "Empty"}, info.SheetNames)

	sheet, err := wb.ReadSheet(0)
	require.NoError(t, err)
	assert.Equal(t, "المبيعات", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, models.NumberCell(30), sheet.Rows[1][1])
	assert.Equal(t, models.NumberCell(1250.75), sheet.Rows[2][2])
	assert.True(t, sheet.Rows[1][3].IsEmpty())

	empty, err := wb.ReadSheet(1)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}
