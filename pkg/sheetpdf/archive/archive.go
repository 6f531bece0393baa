// Package archive bundles rendered documents into a single zip stream.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// Suffix is appended to the workbook base name to form the archive name.
const Suffix = "_pdfs.zip"

// ErrDuplicateEntry indicates two documents share an entry name.
var ErrDuplicateEntry = errors.New("duplicate archive entry")

// Name returns the archive name for a workbook file name:
// "report.xlsx" becomes "report_pdfs.zip".
func Name(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "workbook"
	}
	return base + Suffix
}

// Write streams one deflated entry per document to w, in order. Entry
// names are the documents' file names.
func Write(w io.Writer, docs []models.RenderedDocument) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]struct{}, len(docs))
	now := time.Now()

	for _, doc := range docs {
		if _, dup := seen[doc.FileName]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, doc.FileName)
		}
		seen[doc.FileName] = struct{}{}

		if err := addFile(zw, doc.FileName, doc.Path, now); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, name, path string, modified time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
