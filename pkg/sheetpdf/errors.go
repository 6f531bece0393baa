package sheetpdf

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExtension indicates the filename does not end in .xls or .xlsx.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ErrUnreadableWorkbook indicates the workbook container could not be opened.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// ErrEmptyResultSet indicates no sheet produced a document.
var ErrEmptyResultSet = errors.New("no non-empty sheets to convert")

// SheetReadError reports a sheet that neither the primary nor the default
// parser could read.
type SheetReadError struct {
	SheetName string
	Primary   error
	Fallback  error
}

func (e *SheetReadError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("read sheet %q: %v", e.SheetName, e.Primary)
	}
	return fmt.Sprintf("read sheet %q: primary: %v; fallback: %v", e.SheetName, e.Primary, e.Fallback)
}

func (e *SheetReadError) Unwrap() []error {
	var errs []error
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}

// RenderError represents a failure while writing a sheet's document.
type RenderError struct {
	SheetName string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render sheet %q: %v", e.SheetName, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func unreadable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnreadableWorkbook, err)
}
