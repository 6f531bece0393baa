package sheetpdf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/archive"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/logfields"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/metrics"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/parser"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/render"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/shaping"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/workspace"
)

// DocumentExt is the extension of every rendered document.
const DocumentExt = ".pdf"

// Converter runs the read, shape, render and package pipeline. A Converter
// holds only read-only configuration and may be reused across requests.
type Converter struct {
	opts     Options
	reader   *Reader
	shaper   *shaping.Shaper
	renderer *render.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(c *Converter) { c.recorder = recorder }
}

// WithRenderer replaces the renderer built from Options.FontPath.
func WithRenderer(renderer *render.Renderer) Option {
	return func(c *Converter) { c.renderer = renderer }
}

// New creates a Converter. The font is resolved here, once.
func New(opts Options, options ...Option) *Converter {
	c := &Converter{
		opts:     opts,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, o := range options {
		o(c)
	}

	c.reader = NewReader(parser.Options{RespectPrintArea: opts.RespectPrintArea}, c.logger, c.recorder)
	c.shaper = shaping.New(shaping.Options{KeepHarakat: opts.KeepHarakat})
	if c.renderer == nil {
		face := render.LoadFont(opts.FontPath, c.logger)
		c.renderer = render.New(face, render.DefaultStyle())
	}
	return c
}

// Outcome describes one completed request.
type Outcome struct {
	JobID string
	// ArchiveName is the suggested name of the zip written by ConvertWorkbook.
	ArchiveName string
	// Workbook describes the input once it has been opened.
	Workbook models.WorkbookInfo
	Result   *models.ConversionResult
	Duration time.Duration
}

// ConvertWorkbook handles one full request: it reads the workbook, renders
// every non-empty sheet into a scratch workspace and writes the zip archive
// to w. Nothing is written to w unless at least one document was rendered.
// When no sheet produced a document the error is ErrEmptyResultSet and the
// returned outcome still lists the skipped sheets.
func (c *Converter) ConvertWorkbook(data []byte, filename string, w io.Writer) (out *Outcome, err error) {
	start := time.Now()
	out = &Outcome{JobID: uuid.NewString(), ArchiveName: archive.Name(filename)}
	logger := c.logger.With(logfields.JobID(out.JobID), logfields.Book(filepath.Base(filename)))

	defer func() {
		out.Duration = time.Since(start)
		c.recorder.ObserveConversionDuration(out.Duration)
		switch {
		case err == nil:
			c.recorder.IncConversionOutcome(metrics.OutcomeSuccess)
		case errors.Is(err, ErrEmptyResultSet):
			c.recorder.IncConversionOutcome(metrics.OutcomeEmpty)
		default:
			c.recorder.IncConversionOutcome(metrics.OutcomeFailed)
		}
		logger.Info("Conversion finished",
			logfields.DurationMS(float64(out.Duration.Microseconds())/1000),
			logfields.Error(err))
	}()

	wb, err := c.reader.withLogger(logger).Read(data, filename)
	if err != nil {
		return out, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			logger.Debug("Failed to close workbook", logfields.Error(cerr))
		}
	}()
	out.Workbook = wb.Info()

	ws := workspace.NewManager(c.opts.WorkDir, logger)
	if err := ws.Create(); err != nil {
		return out, err
	}
	defer func() {
		if cerr := ws.Cleanup(); cerr != nil {
			logger.Warn("Workspace cleanup failed", logfields.Path(ws.Path()), logfields.Error(cerr))
		}
	}()

	out.Result, err = c.convert(wb, ws, logger)
	if err != nil {
		return out, err
	}

	if err := archive.Write(w, out.Result.Documents); err != nil {
		return out, fmt.Errorf("package archive: %w", err)
	}
	logger.Info("Packaged archive",
		logfields.Path(out.ArchiveName),
		logfields.Count(len(out.Result.Documents)))
	return out, nil
}

// Convert renders every non-empty sheet of wb into the workspace ws, in
// workbook order. Empty sheets are recorded as skipped. Sheets neither
// parser can read are skipped or abort the conversion according to
// Options.OnSheetFailure. When no document was produced the error is
// ErrEmptyResultSet.
func (c *Converter) Convert(wb *Workbook, ws *workspace.Manager) (*models.ConversionResult, error) {
	return c.convert(wb, ws, c.logger.With(logfields.Book(wb.BookName)))
}

func (c *Converter) convert(wb *Workbook, ws *workspace.Manager, logger *slog.Logger) (*models.ConversionResult, error) {
	result := &models.ConversionResult{BookName: wb.BookName}
	names := newNameSet()

	for i, sheetName := range wb.SheetNames() {
		sheet, err := wb.ReadSheet(i)
		if err != nil {
			var readErr *SheetReadError
			if !errors.As(err, &readErr) || c.opts.OnSheetFailure == SheetFailureAbort {
				c.recorder.IncSheetResult(metrics.SheetFailed)
				return nil, err
			}
			logger.Warn("Skipping unreadable sheet", logfields.Sheet(sheetName), logfields.Error(err))
			c.recorder.IncSheetResult(metrics.SheetFailed)
			result.Skipped = append(result.Skipped, models.SkippedSheet{
				SheetName: sheetName,
				Reason:    models.SkipUnreadable,
				Detail:    err.Error(),
			})
			continue
		}

		if sheet.IsEmpty() {
			logger.Info("Skipping empty sheet", logfields.Sheet(sheetName))
			c.recorder.IncSheetResult(metrics.SheetEmpty)
			result.Skipped = append(result.Skipped, models.SkippedSheet{
				SheetName: sheetName,
				Reason:    models.SkipEmpty,
			})
			continue
		}

		doc, err := c.renderSheet(sheet, names.claim(SanitizeName(sheet.Name)), ws)
		if err != nil {
			c.recorder.IncSheetResult(metrics.SheetFailed)
			return nil, err
		}
		c.recorder.IncSheetResult(metrics.SheetConverted)
		c.recorder.ObservePages(doc.Pages)
		logger.Info("Rendered sheet",
			logfields.Sheet(sheetName),
			logfields.Document(doc.FileName),
			logfields.Orientation(string(doc.Orientation)),
			logfields.Pages(doc.Pages),
			logfields.Rows(doc.Rows),
			logfields.Columns(sheet.Rows.Width()))
		result.Documents = append(result.Documents, doc)
	}

	if len(result.Documents) == 0 {
		return result, ErrEmptyResultSet
	}
	return result, nil
}

func (c *Converter) renderSheet(sheet models.Sheet, name string, ws *workspace.Manager) (models.RenderedDocument, error) {
	doc := models.RenderedDocument{
		SheetName: sheet.Name,
		Name:      name,
		FileName:  name + DocumentExt,
		Title:     c.shaper.ShapeString(sheet.Name),
		Rows:      len(sheet.Rows),
	}
	path, err := ws.File(doc.FileName)
	if err != nil {
		return doc, &RenderError{SheetName: sheet.Name, Err: err}
	}
	doc.Path = path

	grid := c.shaper.ShapeGrid(sheet.Rows)
	f, err := os.Create(doc.Path)
	if err != nil {
		return doc, &RenderError{SheetName: sheet.Name, Err: err}
	}

	res, err := c.renderer.Render(f, doc.Title, grid)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(doc.Path)
		return doc, &RenderError{SheetName: sheet.Name, Err: err}
	}

	doc.Orientation = res.Orientation
	doc.Pages = res.Pages
	return doc, nil
}

const forbiddenNameChars = `\/:*?"<>|`

// SanitizeName turns a sheet name into a file-name-safe document name. It
// removes path and reserved characters, trims surrounding whitespace and
// keeps every other character, Arabic included. A name with nothing left
// becomes "sheet".
func SanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenNameChars, r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "sheet"
	}
	return cleaned
}

// nameSet hands out document names that are unique ignoring case.
type nameSet map[string]struct{}

func newNameSet() nameSet {
	return make(nameSet)
}

// claim returns name, or name with the first free " (n)" suffix, n >= 2.
func (s nameSet) claim(name string) string {
	candidate := name
	for n := 2; ; n++ {
		key := strings.ToLower(candidate)
		if _, taken := s[key]; !taken {
			s[key] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
}
