package sheetpdf

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/logfields"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/metrics"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/parser"
)

// Reader opens workbooks from raw bytes.
type Reader struct {
	opts     parser.Options
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewReader creates a Reader. A nil logger or recorder selects the default.
func NewReader(opts parser.Options, logger *slog.Logger, recorder metrics.Recorder) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Reader{opts: opts, logger: logger, recorder: recorder}
}

func (r *Reader) withLogger(logger *slog.Logger) *Reader {
	cp := *r
	cp.logger = logger
	return &cp
}

// Workbook is an opened workbook whose sheets are read on demand.
//
// The sheet list comes from the default parser, chosen by content. Each
// sheet is read with the primary parser, chosen by extension, and falls
// back to the default parser when the primary one fails.
type Workbook struct {
	BookName string
	// Format is the container format detected from content.
	Format parser.Format

	names      []string
	primary    parser.Strategy
	primaryErr error
	fallback   parser.Strategy
	logger     *slog.Logger
	recorder   metrics.Recorder
}

// Read checks the filename extension and opens the workbook. Only .xls and
// .xlsx are accepted; anything else fails before the content is looked at.
func (r *Reader) Read(data []byte, filename string) (*Workbook, error) {
	bookName := filepath.Base(filename)
	format, ok := parser.FormatForExtension(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(filename))
	}

	fallback, sniffed, err := parser.OpenDefault(data)
	if err != nil {
		return nil, unreadable(err)
	}

	wb := &Workbook{
		BookName: bookName,
		Format:   sniffed,
		names:    fallback.SheetNames(),
		fallback: fallback,
		logger:   r.logger,
		recorder: r.recorder,
	}

	// A legacy workbook with a matching extension is read by one parser only.
	if format == parser.FormatXLS && sniffed == parser.FormatXLS {
		wb.primary = fallback
	} else {
		wb.primary, wb.primaryErr = parser.OpenPrimary(format, data, r.opts)
		if wb.primaryErr != nil {
			r.logger.Warn("Primary parser unavailable, sheets will use the default parser",
				logfields.Book(bookName),
				logfields.Format(string(format)),
				logfields.Error(wb.primaryErr))
		}
	}

	r.logger.Debug("Opened workbook",
		logfields.Book(bookName),
		logfields.Format(string(sniffed)),
		logfields.Count(len(wb.names)))
	return wb, nil
}

// SheetNames lists the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.names
}

// Info summarizes the workbook.
func (w *Workbook) Info() models.WorkbookInfo {
	return models.WorkbookInfo{
		BookName:   w.BookName,
		Format:     string(w.Format),
		SheetNames: w.names,
	}
}

// ReadSheet reads and normalizes the sheet at index. When both parsers
// fail the error is a *SheetReadError.
func (w *Workbook) ReadSheet(index int) (models.Sheet, error) {
	if index < 0 || index >= len(w.names) {
		return models.Sheet{}, fmt.Errorf("%w: %d", parser.ErrSheetIndex, index)
	}
	name := w.names[index]
	sheet := models.Sheet{Index: index, Name: name}

	primaryErr := w.primaryErr
	primaryName := string(w.Format)
	if w.primary != nil {
		primaryName = w.primary.Name()
		grid, err := w.primary.ReadSheet(index, name)
		if err == nil {
			sheet.Rows = parser.Normalize(grid)
			return sheet, nil
		}
		primaryErr = err
		if w.primary == w.fallback {
			return sheet, &SheetReadError{SheetName: name, Primary: err}
		}
	}

	w.logger.Warn("Primary parser failed for sheet, retrying with default parser",
		logfields.Sheet(name),
		logfields.Strategy(primaryName),
		logfields.Error(primaryErr))
	w.recorder.IncReadFallback(primaryName)

	grid, err := w.fallback.ReadSheet(index, name)
	if err != nil {
		return sheet, &SheetReadError{SheetName: name, Primary: primaryErr, Fallback: err}
	}
	sheet.Rows = parser.Normalize(grid)
	return sheet, nil
}

// Close releases both parsers.
func (w *Workbook) Close() error {
	var errs []error
	if w.primary != nil && w.primary != w.fallback {
		errs = append(errs, w.primary.Close())
	}
	if w.fallback != nil {
		errs = append(errs, w.fallback.Close())
	}
	return errors.Join(errs...)
}
