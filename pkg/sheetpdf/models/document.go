package models

// Orientation is the page orientation of a rendered document.
type Orientation string

const (
	// Portrait is the upright page orientation.
	Portrait Orientation = "portrait"
	// Landscape is the rotated page orientation used for wide tables.
	Landscape Orientation = "landscape"
)

// RenderedDocument is a named paginated artifact produced for one sheet.
type RenderedDocument struct {
	// SheetName is the unsanitized sheet name.
	SheetName string `json:"sheet_name"`
	// Name is the sanitized, deduplicated logical name.
	Name string `json:"name"`
	// FileName is the archive entry name (Name plus extension).
	FileName string `json:"file_name"`
	// Title is the shaped visible title.
	Title ShapedText `json:"title"`
	// Orientation is the chosen page geometry.
	Orientation Orientation `json:"orientation"`
	// Pages is the number of pages written.
	Pages int `json:"pages"`
	// Rows is the number of table rows, header included.
	Rows int `json:"rows"`
	// Path is the location of the intermediate artifact in the workspace.
	Path string `json:"-"`
}

// SkipReason explains why a sheet produced no document.
type SkipReason string

const (
	// SkipEmpty marks a sheet whose cells are all empty.
	SkipEmpty SkipReason = "empty"
	// SkipUnreadable marks a sheet that neither parser could read.
	SkipUnreadable SkipReason = "unreadable"
)

// SkippedSheet records a sheet that was left out of the output.
type SkippedSheet struct {
	SheetName string     `json:"sheet_name"`
	Reason    SkipReason `json:"reason"`
	Detail    string     `json:"detail,omitempty"`
}

// ConversionResult is the ordered outcome of converting one workbook.
type ConversionResult struct {
	// BookName is the workbook file name.
	BookName string `json:"book_name"`
	// Documents lists rendered documents in sheet order.
	Documents []RenderedDocument `json:"documents"`
	// Skipped lists sheets that produced no document.
	Skipped []SkippedSheet `json:"skipped,omitempty"`
}
