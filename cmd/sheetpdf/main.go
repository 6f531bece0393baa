// Package main provides the CLI entry point for sheetpdf.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/cobra"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/logfields"
	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/metrics"
)

var (
	configPath       string
	outputPath       string
	outputDir        string
	sheetsDir        string
	fontPath         string
	keepHarakat      bool
	respectPrintArea bool
	onSheetFailure   string
	logLevel         string
	logFormat        string
	metricsFile      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sheetpdf",
		Short:        "Convert spreadsheet workbooks into per-sheet PDF documents",
		SilenceUsage: true,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [input.xls|input.xlsx]",
		Short: "Render every non-empty sheet as a PDF and bundle them as a zip",
		Long: `convert renders each non-empty sheet of an .xls or .xlsx workbook as a
paginated PDF table with right-to-left text support, and writes all documents
to one zip archive named <workbook>_pdfs.zip.`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	flags := convertCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Archive path (default: <workbook>_pdfs.zip in the output dir)")
	flags.StringVar(&outputDir, "output-dir", ".", "Directory for the archive when --output is not set")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Also write each PDF as a loose file into this directory")
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&fontPath, "font", "", "TrueType font used for all text")
	flags.BoolVar(&keepHarakat, "keep-harakat", false, "Keep Arabic diacritics")
	flags.BoolVar(&respectPrintArea, "respect-print-area", false, "Restrict xlsx sheets to their print area")
	flags.StringVar(&onSheetFailure, "on-sheet-failure", "", "Unreadable sheet policy: skip or abort")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")

	rootCmd.AddCommand(convertCmd)
	return rootCmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	logger, err := sheetpdf.NewLogger(cmd.ErrOrStderr(), opts.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if opts.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	conv := sheetpdf.New(opts, sheetpdf.WithLogger(logger), sheetpdf.WithRecorder(recorder))

	var archive bytes.Buffer
	out, convErr := conv.ConvertWorkbook(data, filepath.Base(inputPath), &archive)

	if prom != nil {
		if err := prom.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(err))
		}
	}

	if errors.Is(convErr, sheetpdf.ErrEmptyResultSet) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s has no non-empty sheets, no archive written\n", inputPath)
		return nil
	}
	if convErr != nil {
		return fmt.Errorf("conversion failed: %w", convErr)
	}

	dest := outputPath
	if dest == "" {
		dest = filepath.Join(outputDir, out.ArchiveName)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, archive.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(archive.Bytes(), sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d document(s) from %d %s sheet(s), %d skipped\n",
		dest, len(out.Result.Documents), len(out.Workbook.SheetNames), out.Workbook.Format,
		len(out.Result.Skipped))
	for _, s := range out.Result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "  skipped %q (%s)\n", s.SheetName, s.Reason)
	}
	return nil
}

// loadOptions layers explicitly set flags over the file and environment.
func loadOptions(cmd *cobra.Command) (sheetpdf.Options, error) {
	opts, err := sheetpdf.LoadOptions(configPath)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("font") {
		opts.FontPath = fontPath
	}
	if flags.Changed("keep-harakat") {
		opts.KeepHarakat = keepHarakat
	}
	if flags.Changed("respect-print-area") {
		opts.RespectPrintArea = respectPrintArea
	}
	if flags.Changed("on-sheet-failure") {
		opts.OnSheetFailure = sheetpdf.SheetFailurePolicy(onSheetFailure)
	}
	if flags.Changed("log-level") {
		opts.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		opts.Log.Format = sheetpdf.LogFormat(logFormat)
	}
	if flags.Changed("metrics-file") {
		opts.MetricsFile = metricsFile
	}
	return opts, opts.Validate()
}

// writeSheetFiles extracts every archive entry into dir.
func writeSheetFiles(archive []byte, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return err
	}
	for _, entry := range zr.File {
		if err := extractEntry(entry, filepath.Join(dir, filepath.Base(entry.Name))); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
