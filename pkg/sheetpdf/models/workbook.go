package models

// WorkbookInfo describes a workbook opened for conversion.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is the container format detected from content ("xlsx" or "xls").
	Format string `json:"format"`
	// SheetNames lists the sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
}
