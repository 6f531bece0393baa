package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/logfields"
)

// FallbackFamily is the core PDF font used when no TrueType face is available.
// It has no Arabic glyphs.
const FallbackFamily = "Helvetica"

// Face is the single font face used for every text element of a document.
type Face struct {
	// Family is the name the face is registered under.
	Family string
	// Data holds the TrueType font bytes. Nil for the core fallback font.
	Data []byte
	// Path is the file the face was loaded from.
	Path string
	// Degraded is true when the fallback face is in use.
	Degraded bool
}

// FallbackFace returns the core font face.
func FallbackFace() Face {
	return Face{Family: FallbackFamily, Degraded: true}
}

// LoadFont resolves the document face once at startup. A missing or
// unusable font file selects the fallback face; Arabic text then renders
// as placeholder glyphs.
func LoadFont(path string, logger *slog.Logger) Face {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		logger.Warn("No font configured, using fallback face",
			logfields.Font(FallbackFamily))
		return FallbackFace()
	}

	face, err := loadTrueType(path)
	if err != nil {
		logger.Warn("Preferred font unavailable, using fallback face",
			logfields.Path(path),
			logfields.Font(FallbackFamily),
			logfields.Error(err))
		return FallbackFace()
	}

	logger.Info("Loaded font", logfields.Path(path), logfields.Font(face.Family))
	return face
}

func loadTrueType(path string) (face Face, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse font: %v", r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return Face{}, err
	}

	family := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if family == "" {
		family = "Document"
	}

	// Validate on a scratch document.
	probe := fpdf.New("P", "pt", "A4", "")
	probe.AddUTF8FontFromBytes(family, "", data)
	probe.SetFont(family, "", 10)
	if err = probe.Error(); err != nil {
		return Face{}, fmt.Errorf("parse font: %w", err)
	}

	return Face{Family: family, Data: data, Path: path}, nil
}
