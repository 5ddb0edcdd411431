package compliance

import "sort"

// ReasonCount is one entry of a reason frequency table.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Stats aggregates the verdicts of one category. The compliant and
// non-compliant counts always sum to the total.
type Stats struct {
	// Category is the procurement flow the stats cover.
	Category Category `json:"category"`

	// Total is the number of evaluated cases.
	Total int `json:"total_cases"`

	// Compliant is the number of cases without violations.
	Compliant int `json:"compliant_cases"`

	// NonCompliant is the number of cases with at least one violation.
	NonCompliant int `json:"non_compliant_cases"`

	reasons map[string]int
}

// NewStats returns empty stats for a category.
func NewStats(category Category) *Stats {
	return &Stats{Category: category, reasons: make(map[string]int)}
}

// Add tallies one verdict. Every reason of a non-compliant verdict counts
// individually; compliant verdicts count under the canonical compliant
// reason.
func (s *Stats) Add(v *Verdict) {
	s.Total++
	if v.Compliant {
		s.Compliant++
	} else {
		s.NonCompliant++
	}
	for _, reason := range v.Reasons() {
		s.reasons[reason]++
	}
}

// Rate returns the compliant share in percent, zero for empty stats.
func (s *Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Compliant) / float64(s.Total) * 100
}

// Reasons returns the reason frequency table sorted by descending count,
// reason text as tie-break.
func (s *Stats) Reasons() []ReasonCount {
	counts := make([]ReasonCount, 0, len(s.reasons))
	for reason, count := range s.reasons {
		counts = append(counts, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Reason < counts[j].Reason
	})
	return counts
}

// TopReasons returns at most n entries of the frequency table.
func (s *Stats) TopReasons(n int) []ReasonCount {
	reasons := s.Reasons()
	if n < len(reasons) {
		reasons = reasons[:n]
	}
	return reasons
}
