package eventlog

import (
	"testing"
	"time"
)

func TestCase_BoolAttr(t *testing.T) {
	c := &Case{Attributes: map[string]string{
		"set-true":  "true",
		"set-TRUE":  "TRUE",
		"set-false": "false",
		"padded":    " true ",
		"garbage":   "yes",
	}}

	tests := []struct {
		name string
		attr string
		def  bool
		want bool
	}{
		{"true value", "set-true", false, true},
		{"case-insensitive", "set-TRUE", false, true},
		{"false value", "set-false", true, false},
		{"whitespace trimmed", "padded", false, true},
		{"non-boolean reads false", "garbage", true, false},
		{"missing uses default true", "absent", true, true},
		{"missing uses default false", "absent", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.BoolAttr(tt.attr, tt.def); got != tt.want {
				t.Errorf("BoolAttr(%q, %v) = %v, want %v", tt.attr, tt.def, got, tt.want)
			}
		})
	}
}

func TestCase_FloatAttr(t *testing.T) {
	c := &Case{Attributes: map[string]string{
		"value":  "42.5",
		"padded": " 7 ",
		"bad":    "n/a",
	}}

	if got := c.FloatAttr("value", 0); got != 42.5 {
		t.Errorf("FloatAttr(value) = %v, want 42.5", got)
	}
	if got := c.FloatAttr("padded", 0); got != 7 {
		t.Errorf("FloatAttr(padded) = %v, want 7", got)
	}
	if got := c.FloatAttr("bad", -1); got != -1 {
		t.Errorf("FloatAttr(bad) = %v, want default", got)
	}
	if got := c.FloatAttr("absent", -1); got != -1 {
		t.Errorf("FloatAttr(absent) = %v, want default", got)
	}
}

func TestCase_Duration(t *testing.T) {
	base := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		times []time.Time
		want  time.Duration
	}{
		{"no events", nil, 0},
		{"single timestamp", []time.Time{base}, 0},
		{"ordered", []time.Time{base, base.Add(time.Hour)}, time.Hour},
		{"out of order", []time.Time{base.Add(time.Hour), base, base.Add(30 * time.Minute)}, time.Hour},
		{"zero timestamps ignored", []time.Time{{}, base, base.Add(time.Minute)}, time.Minute},
		{"only one usable timestamp", []time.Time{{}, base}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timedCase("x", tt.times...).Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLog_Derive(t *testing.T) {
	log := logOf(caseWith("a", "x"), caseWith("b", "y"))
	derived := log.Derive(log.Cases[:1])

	if len(derived.Cases) != 1 || derived.Cases[0] != log.Cases[0] {
		t.Error("Derive() should share cases by reference")
	}
	derived.Attributes["extra"] = "1"
	if _, ok := log.Attributes["extra"]; ok {
		t.Error("Derive() must copy the attribute map")
	}
}

func TestLog_EventCount(t *testing.T) {
	log := logOf(caseWith("a", "x", "y"), caseWith("b"), caseWith("c", "z"))
	if got := log.EventCount(); got != 3 {
		t.Errorf("EventCount() = %d, want 3", got)
	}
}
