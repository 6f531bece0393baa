package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"JobID", KeyJobID, "123", JobID("123")},
		{"Book", KeyBook, "report.xlsx", Book("report.xlsx")},
		{"Format", KeyFormat, "xls", Format("xls")},
		{"Sheet", KeySheet, "Sales", Sheet("Sales")},
		{"Strategy", KeyStrategy, "xlsx", Strategy("xlsx")},
		{"Reason", KeyReason, "empty", Reason("empty")},
		{"Document", KeyDocument, "Sales.pdf", Document("Sales.pdf")},
		{"Orientation", KeyOrientation, "landscape", Orientation("landscape")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Font", KeyFont, "Amiri", Font("Amiri")},
		{"Stage", KeyStage, "render", Stage("render")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for integer and float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := SheetIndex(2); v.Key != KeySheetIndex || v.Value.Int64() != 2 {
		t.Fatalf("SheetIndex mismatch: %v", v)
	}
	if v := Pages(3); v.Key != KeyPages {
		t.Fatalf("Pages key mismatch: %s", v.Key)
	}
	if v := Rows(10); v.Key != KeyRows {
		t.Fatalf("Rows key mismatch: %s", v.Key)
	}
	if v := Columns(7); v.Key != KeyColumns {
		t.Fatalf("Columns key mismatch: %s", v.Key)
	}
	if v := Count(1); v.Key != KeyCount {
		t.Fatalf("Count key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS || v.Value.Float64() != 12.5 {
		t.Fatalf("DurationMS mismatch: %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Fatalf("Expected boom, got %s", got)
	}
}
