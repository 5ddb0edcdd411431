package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"infoprom/poaudit/pkg/analysis"
	"infoprom/poaudit/pkg/compliance"
)

func TestJSONExporter_Export(t *testing.T) {
	summary := CategorySummary{
		Category:       "2_way",
		SourceFile:     "group_2_way.xes",
		Total:          10,
		Compliant:      7,
		NonCompliant:   3,
		ComplianceRate: 70,
		Reasons: []compliance.ReasonCount{
			{Reason: compliance.ReasonCompliant, Count: 7},
			{Reason: compliance.ViolationMissingInvoiceReceipt, Count: 3},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONExporter(true).Export(summary, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded CategorySummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Category != "2_way" || decoded.Total != 10 || decoded.ComplianceRate != 70 {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Reasons) != 2 || decoded.Reasons[0].Reason != compliance.ReasonCompliant {
		t.Errorf("reasons = %+v", decoded.Reasons)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("pretty output should end with a newline")
	}
}

func TestJSONExporter_ErrorEntry(t *testing.T) {
	summary := FailedCategorySummary("consignment", "group_consignment.xes", os.ErrNotExist)

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(summary, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"error"`) {
		t.Errorf("failed summary should carry an error field: %s", buf.String())
	}
	if summary.Total != 0 || summary.Compliant != 0 {
		t.Error("failed summary must report zero counts")
	}
}

func TestJSONExporter_ExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "summary.json")
	if err := NewJSONExporter(true).ExportFile(map[string]int{"x": 1}, path); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("exported file is not valid JSON: %s", data)
	}
}

func TestCSVExporter_ExportReasons(t *testing.T) {
	reasons := []compliance.ReasonCount{
		{Reason: compliance.ViolationMissingGoodsReceipt, Count: 5},
		{Reason: "reason, with comma", Count: 1},
	}

	var buf bytes.Buffer
	if err := NewCSVExporter(true).ExportReasons(reasons, &buf); err != nil {
		t.Fatalf("ExportReasons() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "reason,count" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], `"reason, with comma"`) {
		t.Errorf("comma value not quoted: %q", lines[2])
	}
}

func TestCSVExporter_ExportHandovers(t *testing.T) {
	cases := []analysis.CaseHandovers{
		{CaseID: "c1", BetweenRoles: 2, WithinRoles: 1, Duration: 90 * time.Second},
		{CaseID: "c2"},
	}

	var buf bytes.Buffer
	if err := NewCSVExporter(true).ExportHandovers(cases, &buf); err != nil {
		t.Fatalf("ExportHandovers() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "case_id,between_handover_count,inside_handover_count,duration_seconds" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "c1,2,1,90" {
		t.Errorf("row = %q, want c1,2,1,90", lines[1])
	}
	if lines[2] != "c2,0,0,0" {
		t.Errorf("row = %q, want c2,0,0,0", lines[2])
	}
}

func TestCSVExporter_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	reasons := []compliance.ReasonCount{{Reason: "x", Count: 1}}
	if err := NewCSVExporter(false).ExportReasons(reasons, &buf); err != nil {
		t.Fatalf("ExportReasons() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "x,1" {
		t.Errorf("output = %q, want single data row", got)
	}
}
