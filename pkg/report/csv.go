package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"infoprom/poaudit/pkg/analysis"
	"infoprom/poaudit/pkg/compliance"
)

// CSVExporter writes frequency tables and per-case analysis rows as CSV.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// ExportReasons writes a reason frequency table.
func (e *CSVExporter) ExportReasons(reasons []compliance.ReasonCount, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write([]string{"reason", "count"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	for _, rc := range reasons {
		row := []string{rc.Reason, strconv.Itoa(rc.Count)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportHandovers writes per-case handover counts and durations, one row
// per case in log order.
func (e *CSVExporter) ExportHandovers(cases []analysis.CaseHandovers, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		header := []string{"case_id", "between_handover_count", "inside_handover_count", "duration_seconds"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	for _, ch := range cases {
		row := []string{
			ch.CaseID,
			strconv.Itoa(ch.BetweenRoles),
			strconv.Itoa(ch.WithinRoles),
			strconv.FormatFloat(ch.Duration.Seconds(), 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportReasonsFile writes a reason frequency table to a file, creating
// parent directories as needed.
func (e *CSVExporter) ExportReasonsFile(reasons []compliance.ReasonCount, path string) error {
	return e.exportFile(path, func(w io.Writer) error {
		return e.ExportReasons(reasons, w)
	})
}

// ExportHandoversFile writes per-case handover rows to a file, creating
// parent directories as needed.
func (e *CSVExporter) ExportHandoversFile(cases []analysis.CaseHandovers, path string) error {
	return e.exportFile(path, func(w io.Writer) error {
		return e.ExportHandovers(cases, w)
	})
}

func (e *CSVExporter) exportFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
