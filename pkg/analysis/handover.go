package analysis

import (
	"sort"
	"time"

	"infoprom/poaudit/pkg/eventlog"
)

// CaseHandovers holds the handover counts and duration of one case.
type CaseHandovers struct {
	// CaseID is the case identifier.
	CaseID string `json:"case_id"`

	// BetweenRoles counts consecutive role-carrying events executed by
	// different roles.
	BetweenRoles int `json:"between_handover_count"`

	// WithinRoles counts consecutive role-carrying events executed by the
	// same role.
	WithinRoles int `json:"inside_handover_count"`

	// Duration is the span between the earliest and latest event
	// timestamps; zero for cases with fewer than two timestamped events.
	Duration time.Duration `json:"duration"`
}

// Summary aggregates the handover statistics of one log.
type Summary struct {
	// Cases is the number of analyzed cases.
	Cases int `json:"cases"`

	// ZeroDurationCases counts cases with fewer than two timestamped
	// events.
	ZeroDurationCases int `json:"zero_duration_cases"`

	// MeanBetween and MedianBetween describe between-role handovers.
	MeanBetween   float64 `json:"mean_between_handovers"`
	MedianBetween float64 `json:"median_between_handovers"`

	// MeanWithin and MedianWithin describe within-role handovers.
	MeanWithin   float64 `json:"mean_within_handovers"`
	MedianWithin float64 `json:"median_within_handovers"`

	// MeanDurationSeconds and MedianDurationSeconds describe case
	// durations.
	MeanDurationSeconds   float64 `json:"mean_duration_seconds"`
	MedianDurationSeconds float64 `json:"median_duration_seconds"`
}

// Handovers computes per-case handover counts for every case of the log,
// in log order.
func Handovers(log *eventlog.Log) []CaseHandovers {
	results := make([]CaseHandovers, 0, len(log.Cases))
	for _, c := range log.Cases {
		between, within := countHandovers(c)
		results = append(results, CaseHandovers{
			CaseID:       c.ID,
			BetweenRoles: between,
			WithinRoles:  within,
			Duration:     c.Duration(),
		})
	}
	return results
}

// countHandovers walks the role sequence of a case and counts transitions.
// Events without a role are skipped, so a role gap does not break a
// within-role streak.
func countHandovers(c *eventlog.Case) (between, within int) {
	prev := ""
	seen := false
	for i := range c.Events {
		role := c.Events[i].Role
		if role == "" {
			continue
		}
		if seen {
			if role != prev {
				between++
			} else {
				within++
			}
		}
		prev = role
		seen = true
	}
	return between, within
}

// Summarize aggregates per-case handover rows into a summary.
func Summarize(cases []CaseHandovers) Summary {
	s := Summary{Cases: len(cases)}
	if len(cases) == 0 {
		return s
	}

	betweens := make([]float64, 0, len(cases))
	withins := make([]float64, 0, len(cases))
	durations := make([]float64, 0, len(cases))
	for _, c := range cases {
		betweens = append(betweens, float64(c.BetweenRoles))
		withins = append(withins, float64(c.WithinRoles))
		durations = append(durations, c.Duration.Seconds())
		if c.Duration == 0 {
			s.ZeroDurationCases++
		}
	}

	s.MeanBetween, s.MedianBetween = meanMedian(betweens)
	s.MeanWithin, s.MedianWithin = meanMedian(withins)
	s.MeanDurationSeconds, s.MedianDurationSeconds = meanMedian(durations)
	return s
}

func meanMedian(values []float64) (mean, median float64) {
	if len(values) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return mean, median
}
