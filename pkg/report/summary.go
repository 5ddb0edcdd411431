package report

import "infoprom/poaudit/pkg/compliance"

// CategorySummary is the per-category result of one batch run, serialized
// into the summary JSON file.
type CategorySummary struct {
	// Category is the procurement flow identifier.
	Category string `json:"category"`

	// SourceFile is the input log file the category was read from.
	SourceFile string `json:"source_file,omitempty"`

	// Total, Compliant and NonCompliant are the case counts.
	Total        int `json:"total_cases"`
	Compliant    int `json:"compliant_cases"`
	NonCompliant int `json:"non_compliant_cases"`

	// ComplianceRate is the compliant share in percent.
	ComplianceRate float64 `json:"compliance_rate"`

	// Reasons is the reason frequency table, descending by count. It
	// includes the canonical compliant reason.
	Reasons []compliance.ReasonCount `json:"reasons,omitempty"`

	// Error holds the failure description when the category could not be
	// processed; counts are zero in that case.
	Error string `json:"error,omitempty"`
}

// NewCategorySummary builds a summary from aggregated stats.
func NewCategorySummary(stats *compliance.Stats, sourceFile string) CategorySummary {
	return CategorySummary{
		Category:       stats.Category.String(),
		SourceFile:     sourceFile,
		Total:          stats.Total,
		Compliant:      stats.Compliant,
		NonCompliant:   stats.NonCompliant,
		ComplianceRate: stats.Rate(),
		Reasons:        stats.Reasons(),
	}
}

// FailedCategorySummary builds the summary entry for a category whose
// input could not be processed.
func FailedCategorySummary(category, sourceFile string, err error) CategorySummary {
	return CategorySummary{
		Category:   category,
		SourceFile: sourceFile,
		Error:      err.Error(),
	}
}
