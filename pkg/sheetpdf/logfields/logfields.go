// Package logfields holds the canonical slog attribute keys used across the converter.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyJobID       = "job_id"
	KeyBook        = "book"
	KeyFormat      = "format"
	KeySheet       = "sheet"
	KeySheetIndex  = "sheet_index"
	KeyStrategy    = "strategy"
	KeyReason      = "reason"
	KeyDocument    = "document"
	KeyOrientation = "orientation"
	KeyPages       = "pages"
	KeyRows        = "rows"
	KeyColumns     = "columns"
	KeyCount       = "count"
	KeyPath        = "path"
	KeyFont        = "font"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

func JobID(id string) slog.Attr         { return slog.String(KeyJobID, id) }
func Book(name string) slog.Attr        { return slog.String(KeyBook, name) }
func Format(f string) slog.Attr         { return slog.String(KeyFormat, f) }
func Sheet(name string) slog.Attr       { return slog.String(KeySheet, name) }
func SheetIndex(i int) slog.Attr        { return slog.Int(KeySheetIndex, i) }
func Strategy(name string) slog.Attr    { return slog.String(KeyStrategy, name) }
func Reason(r string) slog.Attr         { return slog.String(KeyReason, r) }
func Document(name string) slog.Attr    { return slog.String(KeyDocument, name) }
func Orientation(o string) slog.Attr    { return slog.String(KeyOrientation, o) }
func Pages(n int) slog.Attr             { return slog.Int(KeyPages, n) }
func Rows(n int) slog.Attr              { return slog.Int(KeyRows, n) }
func Columns(n int) slog.Attr           { return slog.Int(KeyColumns, n) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Font(family string) slog.Attr      { return slog.String(KeyFont, family) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
