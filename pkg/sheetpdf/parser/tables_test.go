package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

func TestNormalizeTrimsAndPads(t *testing.T) {
	s := models.StringCell
	grid := models.Grid{
		nil,
		{{}, s("a"), s("b"), s("c")},
		{{}, s("d")},
		{},
		{{}, {}, {}, {}, {}},
	}

	got := Normalize(grid)
	require.Len(t, got, 2)
	assert.Equal(t, []models.Cell{s("a"), s("b"), s("c")}, got[0])
	assert.Equal(t, []models.Cell{s("d"), {}, {}}, got[1])
}

func TestNormalizeKeepsInnerBlankRows(t *testing.T) {
	s := models.StringCell
	got := Normalize(models.Grid{{s("h")}, {}, {s("x")}})
	require.Len(t, got, 3)
	assert.Equal(t, []models.Cell{{}}, got[1])
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize(models.Grid{{{}, models.StringCell("")}, {}}))
}

func TestClipToArea(t *testing.T) {
	s := models.StringCell
	grid := models.Grid{
		{s("a1"), s("b1"), s("c1")},
		{s("a2"), s("b2")},
		{s("a3")},
	}

	got := clipToArea(grid, models.PrintArea{R1: 1, C1: 2, R2: 2, C2: 3})
	assert.Equal(t, models.Grid{
		{s("b1"), s("c1")},
		{s("b2"), {}},
	}, got)
}
