package models

// Grid is a row-major 2-D cell grid. The first row is the header.
type Grid [][]Cell

// IsEmpty reports whether every cell in every row is empty.
func (g Grid) IsEmpty() bool {
	for _, row := range g {
		for _, c := range row {
			if !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Width returns the length of the widest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Sheet represents one named tabular unit of a workbook.
type Sheet struct {
	// Index is the 0-based position of the sheet in the workbook.
	Index int `json:"index"`
	// Name is the display name as stored in the workbook.
	Name string `json:"name"`
	// Rows is the cell grid; rows are padded to the same width.
	Rows Grid `json:"rows,omitempty"`
}

// IsEmpty reports whether the sheet has no non-empty cell.
func (s Sheet) IsEmpty() bool {
	return s.Rows.IsEmpty()
}
