package compliance

import "strings"

// Activity group names in the pattern table.
const (
	GroupGoodsReceipt        = "goods_receipt"
	GroupInvoiceReceipt      = "invoice_receipt"
	GroupPayment             = "payment"
	GroupCreation            = "creation"
	GroupPaymentBlockSet     = "payment_block_set"
	GroupPaymentBlockRemoved = "payment_block_removed"
)

// PatternConfig maps activity group names to the substrings that identify
// them. It is built once at startup and shared read-only across any number
// of concurrent evaluations.
type PatternConfig struct {
	groups map[string][]string
}

// DefaultPatternConfig returns the pattern table for the BPI Challenge 2019
// activity vocabulary.
func DefaultPatternConfig() *PatternConfig {
	return NewPatternConfig(map[string][]string{
		GroupGoodsReceipt:        {"Record Goods Receipt"},
		GroupInvoiceReceipt:      {"Record Invoice Receipt"},
		GroupPayment:             {"Clear Invoice"},
		GroupCreation:            {"Create Purchase Order Item"},
		GroupPaymentBlockSet:     {"Set Payment Block"},
		GroupPaymentBlockRemoved: {"Remove Payment Block"},
	})
}

// MergedPatternConfig returns the default table with the given groups
// replaced by their overrides. Groups absent from overrides keep their
// defaults.
func MergedPatternConfig(overrides map[string][]string) *PatternConfig {
	merged := DefaultPatternConfig()
	for group, patterns := range overrides {
		if len(patterns) > 0 {
			merged.groups[group] = append([]string(nil), patterns...)
		}
	}
	return merged
}

// NewPatternConfig copies the given group table into an immutable config.
func NewPatternConfig(groups map[string][]string) *PatternConfig {
	copied := make(map[string][]string, len(groups))
	for name, patterns := range groups {
		copied[name] = append([]string(nil), patterns...)
	}
	return &PatternConfig{groups: copied}
}

// Patterns returns the substrings of an activity group. Unknown groups
// have no patterns, which makes every presence check on them fail and
// every sequence check vacuously pass.
func (p *PatternConfig) Patterns(group string) []string {
	return p.groups[group]
}

// matchesAny reports whether the activity name contains any pattern as a
// case-insensitive substring. This fuzzy policy is deliberate: "Record
// Goods Receipt for PO" matches the pattern "Record Goods Receipt".
func matchesAny(activity string, patterns []string) bool {
	lower := strings.ToLower(activity)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// hasPattern reports whether any activity name matches any pattern.
func hasPattern(names []string, patterns []string) bool {
	for _, name := range names {
		if matchesAny(name, patterns) {
			return true
		}
	}
	return false
}

// matchPositions returns the 0-based indices of the activity names that
// match any pattern.
func matchPositions(names []string, patterns []string) []int {
	var positions []int
	for i, name := range names {
		if matchesAny(name, patterns) {
			positions = append(positions, i)
		}
	}
	return positions
}

// countMatches counts the activity names matching any pattern, with
// repeated occurrences counted individually.
func countMatches(names []string, patterns []string) int {
	n := 0
	for _, name := range names {
		if matchesAny(name, patterns) {
			n++
		}
	}
	return n
}

// sequenceBefore reports whether every activity matching firstPatterns
// occurs before every activity matching secondPatterns. If either group
// has no occurrences the constraint is vacuously satisfied: absence cannot
// violate an ordering constraint. Otherwise the last occurrence of the
// first group must precede the first occurrence of the second, so a single
// out-of-order repeat fails the check.
func sequenceBefore(names []string, firstPatterns, secondPatterns []string) bool {
	first := matchPositions(names, firstPatterns)
	second := matchPositions(names, secondPatterns)
	if len(first) == 0 || len(second) == 0 {
		return true
	}
	return first[len(first)-1] < second[0]
}
