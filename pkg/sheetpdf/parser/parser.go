// Package parser provides spreadsheet parsing strategies.
//
// A Strategy exposes the sheets of one opened workbook. Two strategies are
// usually open for a request: the primary one chosen by file extension and
// the default one chosen by content sniffing, which serves as the per-sheet
// fallback.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// Format is a spreadsheet container format.
type Format string

const (
	// FormatXLSX is the zipped OOXML workbook format.
	FormatXLSX Format = "xlsx"
	// FormatXLS is the legacy BIFF workbook stored in an OLE2 compound document.
	FormatXLS Format = "xls"
)

// Strategy names, used in logs and metrics.
const (
	StrategyXLSX       = "xlsx"
	StrategyXLSXStream = "xlsx-stream"
	StrategyXLS        = "xls"
)

// ErrUnknownFormat indicates the content is not a recognized spreadsheet container.
var ErrUnknownFormat = errors.New("unrecognized spreadsheet container")

// ErrSheetIndex indicates a sheet index outside the workbook.
var ErrSheetIndex = errors.New("sheet index out of range")

var (
	xlsSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature = []byte("PK\x03\x04")
)

// Strategy reads sheet grids from an opened workbook.
type Strategy interface {
	// Name identifies the strategy.
	Name() string
	// SheetNames lists sheet names in workbook order.
	SheetNames() []string
	// ReadSheet returns the raw grid of a sheet. Rows may be jagged.
	ReadSheet(index int, name string) (models.Grid, error)
	// Close releases the underlying workbook.
	Close() error
}

// Options configures strategy behavior.
type Options struct {
	// RespectPrintArea restricts xlsx sheets to their first defined print area.
	RespectPrintArea bool
}

// FormatForExtension maps a filename to a format by extension.
func FormatForExtension(filename string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "xlsx":
		return FormatXLSX, true
	case "xls":
		return FormatXLS, true
	default:
		return "", false
	}
}

// Sniff detects the container format from the leading bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, xlsSignature):
		return FormatXLS, nil
	case bytes.HasPrefix(data, zipSignature):
		return FormatXLSX, nil
	default:
		return "", ErrUnknownFormat
	}
}

// OpenPrimary opens the extension-directed strategy.
func OpenPrimary(format Format, data []byte, opts Options) (Strategy, error) {
	switch format {
	case FormatXLSX:
		return openXLSX(data, opts)
	case FormatXLS:
		return openXLS(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// OpenDefault opens the content-sniffed strategy.
func OpenDefault(data []byte) (Strategy, Format, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, "", err
	}
	var s Strategy
	switch format {
	case FormatXLSX:
		s, err = openXLSXStream(data)
	default:
		s, err = openXLS(data)
	}
	if err != nil {
		return nil, format, err
	}
	return s, format, nil
}
