package eventlog

import (
	"sort"
	"strings"
)

// variantSeparator joins activity names into a variant signature. The BPI
// activity names contain no commas, so a comma keeps signatures readable
// in reports.
const variantSeparator = ","

// Variant is one distinct activity sequence observed in a log, with the
// number of cases following it.
type Variant struct {
	// Signature is the joined activity sequence, used as the variant key.
	Signature string `json:"signature"`

	// Activities is the activity sequence itself.
	Activities []string `json:"activities"`

	// Count is the number of cases following this sequence.
	Count int `json:"count"`
}

// VariantSignature returns the variant key of a case.
func VariantSignature(c *Case) string {
	return strings.Join(c.ActivityNames(), variantSeparator)
}

// Variants extracts the distinct activity sequences of a log, sorted by
// descending case count with signature as a stable tie-break.
func Variants(log *Log) []Variant {
	bySignature := make(map[string]*Variant)
	for _, c := range log.Cases {
		sig := VariantSignature(c)
		v, ok := bySignature[sig]
		if !ok {
			v = &Variant{Signature: sig, Activities: c.ActivityNames()}
			bySignature[sig] = v
		}
		v.Count++
	}

	variants := make([]Variant, 0, len(bySignature))
	for _, v := range bySignature {
		variants = append(variants, *v)
	}
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Count != variants[j].Count {
			return variants[i].Count > variants[j].Count
		}
		return variants[i].Signature < variants[j].Signature
	})
	return variants
}

// FilterCoverage keeps the cases of the smallest frequency-ordered variant
// prefix whose accumulated case count reaches coverage percent of all
// cases. A coverage of 100 keeps everything.
func FilterCoverage(log *Log, coverage float64) *Log {
	variants := Variants(log)
	total := 0
	for _, v := range variants {
		total += v.Count
	}
	target := float64(total) * coverage / 100

	selected := make(map[string]bool)
	accumulated := 0
	for _, v := range variants {
		accumulated += v.Count
		selected[v.Signature] = true
		if float64(accumulated) >= target {
			break
		}
	}
	return filterBySignatures(log, selected)
}

// FilterTopN keeps the cases of the n most frequent variants.
func FilterTopN(log *Log, n int) *Log {
	variants := Variants(log)
	if n > len(variants) {
		n = len(variants)
	}
	selected := make(map[string]bool, n)
	for _, v := range variants[:n] {
		selected[v.Signature] = true
	}
	return filterBySignatures(log, selected)
}

func filterBySignatures(log *Log, selected map[string]bool) *Log {
	var kept []*Case
	for _, c := range log.Cases {
		if selected[VariantSignature(c)] {
			kept = append(kept, c)
		}
	}
	return log.Derive(kept)
}
