// Package sheetpdf converts spreadsheet workbooks into per-sheet PDF
// documents bundled as a zip archive.
package sheetpdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SheetFailurePolicy decides what happens when a sheet cannot be read by
// either parser.
type SheetFailurePolicy string

const (
	// SheetFailureSkip records the sheet as skipped and continues.
	SheetFailureSkip SheetFailurePolicy = "skip"
	// SheetFailureAbort fails the whole conversion.
	SheetFailureAbort SheetFailurePolicy = "abort"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHEETPDF_"

// Options configures conversion behavior.
type Options struct {
	// FontPath is the TrueType font used for all text. When missing the
	// core Helvetica face is used and Arabic glyphs are not available.
	FontPath string `yaml:"font_path"`
	// KeepHarakat keeps Arabic diacritics instead of dropping them.
	KeepHarakat bool `yaml:"keep_harakat"`
	// RespectPrintArea restricts xlsx sheets to their defined print area.
	RespectPrintArea bool `yaml:"respect_print_area"`
	// OnSheetFailure is the policy for sheets neither parser can read.
	OnSheetFailure SheetFailurePolicy `yaml:"on_sheet_failure"`
	// WorkDir is the parent of per-conversion workspaces. Empty means the
	// system temp dir.
	WorkDir string `yaml:"work_dir"`
	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `yaml:"metrics_file"`

	Log LogOptions `yaml:"log"`
}

// LogOptions configures logging.
type LogOptions struct {
	Level  string    `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		FontPath:       "fonts/Amiri-Regular.ttf",
		OnSheetFailure: SheetFailureSkip,
		Log: LogOptions{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// LoadOptions builds options from defaults, then the YAML file at path
// (optional), then .env, then SHEETPDF_* environment variables.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &opts); err != nil {
			return opts, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// godotenv never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return opts, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := opts.applyEnv(os.LookupEnv); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

func (o *Options) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("FONT_PATH", &o.FontPath)
	str("WORK_DIR", &o.WorkDir)
	str("METRICS_FILE", &o.MetricsFile)
	str("LOG_LEVEL", &o.Log.Level)
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		o.Log.Format = LogFormat(v)
	}
	if v, ok := lookup(EnvPrefix + "ON_SHEET_FAILURE"); ok {
		o.OnSheetFailure = SheetFailurePolicy(v)
	}
	if err := boolean("KEEP_HARAKAT", &o.KeepHarakat); err != nil {
		return err
	}
	return boolean("RESPECT_PRINT_AREA", &o.RespectPrintArea)
}

// Validate normalizes enumerations and rejects unknown values.
func (o *Options) Validate() error {
	o.OnSheetFailure = SheetFailurePolicy(strings.ToLower(strings.TrimSpace(string(o.OnSheetFailure))))
	switch o.OnSheetFailure {
	case "":
		o.OnSheetFailure = SheetFailureSkip
	case SheetFailureSkip, SheetFailureAbort:
	default:
		return fmt.Errorf("invalid sheet failure policy: %s (must be skip or abort)", o.OnSheetFailure)
	}

	o.Log.Format = LogFormat(strings.ToLower(strings.TrimSpace(string(o.Log.Format))))
	switch o.Log.Format {
	case "":
		o.Log.Format = LogFormatText
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", o.Log.Format)
	}

	if _, err := ParseLogLevel(o.Log.Level); err != nil {
		return err
	}
	return nil
}
