package parser

import "github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"

// Normalize trims the grid to the bounding box of its non-empty cells and
// pads every row to the same width. The first remaining row becomes the
// header. An all-empty grid normalizes to nil.
func Normalize(grid models.Grid) models.Grid {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return nil
	}

	width := maxCol - minCol + 1
	out := make(models.Grid, 0, maxRow-minRow+1)
	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		cells := make([]models.Cell, width)
		row := grid[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			cells[colIdx-minCol] = row[colIdx]
		}
		out = append(out, cells)
	}
	return out
}

// findDataBounds finds the bounding box of non-empty cells.
// All bounds are -1 when the grid has no data.
func findDataBounds(grid models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// clipToArea keeps only the cells inside a print area.
func clipToArea(grid models.Grid, area models.PrintArea) models.Grid {
	var out models.Grid
	for rowIdx, row := range grid {
		r := rowIdx + 1
		if r < area.R1 || r > area.R2 {
			continue
		}
		cells := make([]models.Cell, 0, area.C2-area.C1+1)
		for c := area.C1; c <= area.C2; c++ {
			if c-1 < len(row) {
				cells = append(cells, row[c-1])
			} else {
				cells = append(cells, models.Cell{})
			}
		}
		out = append(out, cells)
	}
	return out
}
