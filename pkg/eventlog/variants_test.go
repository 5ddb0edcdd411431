package eventlog

import (
	"testing"
)

// variantLog builds a log with the given variant shape: each entry is an
// activity sequence repeated count times.
func variantLog(t *testing.T, entries []struct {
	activities []string
	count      int
}) *Log {
	t.Helper()
	log := NewLog()
	id := 0
	for _, e := range entries {
		for i := 0; i < e.count; i++ {
			id++
			log.Cases = append(log.Cases, caseWith(string(rune('a'+id)), e.activities...))
		}
	}
	return log
}

func TestVariants_Ordering(t *testing.T) {
	log := variantLog(t, []struct {
		activities []string
		count      int
	}{
		{[]string{"create", "receive"}, 2},
		{[]string{"create", "receive", "pay"}, 5},
		{[]string{"create"}, 2},
	})

	variants := Variants(log)
	if len(variants) != 3 {
		t.Fatalf("len(variants) = %d, want 3", len(variants))
	}
	if variants[0].Signature != "create,receive,pay" || variants[0].Count != 5 {
		t.Errorf("variants[0] = %+v, want the most frequent first", variants[0])
	}
	// Equal counts fall back to signature order.
	if variants[1].Signature != "create" || variants[2].Signature != "create,receive" {
		t.Errorf("tie-break order = %q, %q", variants[1].Signature, variants[2].Signature)
	}
}

func TestFilterCoverage(t *testing.T) {
	log := variantLog(t, []struct {
		activities []string
		count      int
	}{
		{[]string{"a"}, 6},
		{[]string{"b"}, 3},
		{[]string{"c"}, 1},
	})

	tests := []struct {
		name      string
		coverage  float64
		wantCases int
	}{
		{"first variant suffices", 60, 6},
		{"needs two variants", 80, 9},
		{"boundary hit stops accumulation", 90, 9},
		{"full coverage keeps everything", 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterCoverage(log, tt.coverage)
			if len(filtered.Cases) != tt.wantCases {
				t.Errorf("kept %d cases, want %d", len(filtered.Cases), tt.wantCases)
			}
		})
	}
}

func TestFilterTopN(t *testing.T) {
	log := variantLog(t, []struct {
		activities []string
		count      int
	}{
		{[]string{"a"}, 6},
		{[]string{"b"}, 3},
		{[]string{"c"}, 1},
	})

	if got := FilterTopN(log, 2); len(got.Cases) != 9 {
		t.Errorf("top 2 kept %d cases, want 9", len(got.Cases))
	}
	if got := FilterTopN(log, 100); len(got.Cases) != 10 {
		t.Errorf("oversized n kept %d cases, want all 10", len(got.Cases))
	}
	if got := FilterTopN(log, 0); len(got.Cases) != 0 {
		t.Errorf("n=0 kept %d cases, want 0", len(got.Cases))
	}
}
