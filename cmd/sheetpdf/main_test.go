package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvertWritesArchive(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, "report.xlsx", [][]interface{}{{"Name", "Age"}, {"Ali", 30}})
	outDir := filepath.Join(dir, "out")
	sheets := filepath.Join(dir, "sheets")

	stdout, _, err := execute(t, "convert", input,
		"--output-dir", outDir,
		"--sheets-dir", sheets,
		"--log-level", "error")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	archive := filepath.Join(outDir, "report_pdfs.zip")
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("Expected archive at %s: %v", archive, err)
	}
	if !strings.Contains(stdout, "1 document(s) from 1 xlsx sheet(s)") {
		t.Errorf("Unexpected summary: %s", stdout)
	}

	data, err := os.ReadFile(filepath.Join(sheets, "Sheet1.pdf"))
	if err != nil {
		t.Fatalf("Expected loose sheet file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Sheet file is not a PDF")
	}
}

func TestConvertExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, "book.xlsx", [][]interface{}{{"h"}, {"v"}})
	dest := filepath.Join(dir, "custom.zip")
	metricsPath := filepath.Join(dir, "sheetpdf.prom")

	if _, _, err := execute(t, "convert", input, "-o", dest, "--metrics-file", metricsPath, "--log-level", "error"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("Expected archive at %s: %v", dest, err)
	}
	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("Expected metrics file: %v", err)
	}
	if !strings.Contains(string(prom), "sheetpdf_conversion_outcomes_total") {
		t.Errorf("Metrics file lacks outcome counter:\n%s", prom)
	}
}

func TestConvertEmptyWorkbookWarns(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, "blank.xlsx", nil)
	outDir := filepath.Join(dir, "out")

	_, stderr, err := execute(t, "convert", input, "--output-dir", outDir, "--log-level", "error")
	if err != nil {
		t.Fatalf("Expected success for empty workbook, got: %v", err)
	}
	if !strings.Contains(stderr, "no non-empty sheets") {
		t.Errorf("Expected warning, got: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "blank_pdfs.zip")); !os.IsNotExist(err) {
		t.Errorf("Expected no archive for empty workbook")
	}
}

func TestConvertRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(input, []byte("a,b\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "convert", input, "--log-level", "error"); err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
}

func TestConvertMissingInput(t *testing.T) {
	if _, _, err := execute(t, "convert", filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("Expected error for missing input")
	}
}
