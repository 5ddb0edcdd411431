package eventlog

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleXES = `<?xml version="1.0" encoding="UTF-8"?>
<log xes.version="1.0" xes.features="">
	<extension name="Concept" prefix="concept" uri="http://www.xes-standard.org/concept.xesext"/>
	<global scope="event">
		<string key="concept:name" value="__INVALID__"/>
	</global>
	<classifier name="Activity" keys="concept:name"/>
	<string key="concept:name" value="BPI Challenge 2019"/>
	<trace>
		<string key="concept:name" value="case_1"/>
		<string key="Item Category" value="3-way match, invoice after GR"/>
		<boolean key="GR-Based Inv. Verif." value="true"/>
		<string key="PO item value" value="100.50"/>
		<event>
			<string key="concept:name" value="Create Purchase Order Item"/>
			<date key="time:timestamp" value="2018-03-01T08:00:00.000+00:00"/>
			<string key="org:resource" value="user_001"/>
			<string key="userRole" value="purchasing"/>
			<float key="Cumulative net worth (EUR)" value="0"/>
		</event>
		<event>
			<string key="concept:name" value="Record Goods Receipt"/>
			<date key="time:timestamp" value="2018-03-05T10:30:00.000+00:00"/>
			<string key="userRole" value="warehouse"/>
			<float key="Cumulative net worth (EUR)" value="100.5"/>
		</event>
		<event>
			<string key="concept:name" value="Record Invoice Receipt"/>
			<date key="time:timestamp" value="not-a-date"/>
			<float key="Cumulative net worth (EUR)" value="oops"/>
		</event>
	</trace>
	<trace>
		<string key="concept:name" value="case_2"/>
	</trace>
</log>`

func TestRead_SampleLog(t *testing.T) {
	log, err := Read(strings.NewReader(sampleXES))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got := log.Attributes[KeyConceptName]; got != "BPI Challenge 2019" {
		t.Errorf("log concept:name = %q, want %q", got, "BPI Challenge 2019")
	}
	if len(log.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(log.Cases))
	}

	c := log.Cases[0]
	if c.ID != "case_1" {
		t.Errorf("case ID = %q, want case_1", c.ID)
	}
	if got, _ := c.Attr(KeyItemCategory); got != "3-way match, invoice after GR" {
		t.Errorf("Item Category = %q", got)
	}
	if !c.BoolAttr("GR-Based Inv. Verif.", false) {
		t.Error("boolean trace attribute not readable via BoolAttr")
	}
	if got := c.FloatAttr("PO item value", 0); got != 100.50 {
		t.Errorf("PO item value = %v, want 100.50", got)
	}

	if len(c.Events) != 3 {
		t.Fatalf("len(Events) = %d, want 3", len(c.Events))
	}
	first := c.Events[0]
	if first.Activity != "Create Purchase Order Item" {
		t.Errorf("first activity = %q", first.Activity)
	}
	if first.Resource != "user_001" || first.Role != "purchasing" {
		t.Errorf("resource/role = %q/%q", first.Resource, first.Role)
	}
	want := time.Date(2018, 3, 1, 8, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("first timestamp = %v, want %v", first.Timestamp, want)
	}

	if got := c.CumulativeValues(); len(got) != 2 || got[0] != 0 || got[1] != 100.5 {
		t.Errorf("CumulativeValues() = %v, want [0 100.5]", got)
	}

	// Malformed values degrade to string attributes, never fail the case.
	third := c.Events[2]
	if !third.Timestamp.IsZero() {
		t.Errorf("unparseable timestamp should stay zero, got %v", third.Timestamp)
	}
	if got := third.StringAttrs[KeyTimestamp]; got != "not-a-date" {
		t.Errorf("raw timestamp = %q, want preserved", got)
	}
	if got := third.StringAttrs[KeyCumulativeNetWorth]; got != "oops" {
		t.Errorf("malformed float = %q, want kept as string", got)
	}
	if third.HasNumeric(KeyCumulativeNetWorth) {
		t.Error("malformed float must not appear as numeric attribute")
	}

	// The global's placeholder value must not leak into events.
	if got := c.ActivityNames(); got[1] != "Record Goods Receipt" {
		t.Errorf("ActivityNames()[1] = %q", got[1])
	}

	if len(log.Cases[1].Events) != 0 {
		t.Errorf("empty trace should have no events, got %d", len(log.Cases[1].Events))
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	original, err := Read(strings.NewReader(sampleXES))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Write(original, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	reread, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read(written) error = %v", err)
	}

	if len(reread.Cases) != len(original.Cases) {
		t.Fatalf("round-trip case count = %d, want %d", len(reread.Cases), len(original.Cases))
	}
	for i, c := range original.Cases {
		r := reread.Cases[i]
		if r.ID != c.ID {
			t.Errorf("case %d ID = %q, want %q", i, r.ID, c.ID)
		}
		if len(r.Events) != len(c.Events) {
			t.Fatalf("case %d event count = %d, want %d", i, len(r.Events), len(c.Events))
		}
		for j := range c.Events {
			if r.Events[j].Activity != c.Events[j].Activity {
				t.Errorf("case %d event %d activity = %q, want %q",
					i, j, r.Events[j].Activity, c.Events[j].Activity)
			}
			if !r.Events[j].Timestamp.Equal(c.Events[j].Timestamp) {
				t.Errorf("case %d event %d timestamp = %v, want %v",
					i, j, r.Events[j].Timestamp, c.Events[j].Timestamp)
			}
			if r.Events[j].Role != c.Events[j].Role {
				t.Errorf("case %d event %d role = %q, want %q",
					i, j, r.Events[j].Role, c.Events[j].Role)
			}
		}
		if got, want := r.CumulativeValues(), c.CumulativeValues(); len(got) != len(want) {
			t.Errorf("case %d cumulative values = %v, want %v", i, got, want)
		}
	}
	if reread.Attributes[KeyConceptName] != original.Attributes[KeyConceptName] {
		t.Errorf("log attributes lost in round trip")
	}
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("<log><trace>"))
	if err == nil {
		t.Fatal("Read() of truncated document should fail")
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile("testdata/does-not-exist.xes")
	if err == nil {
		t.Fatal("ReadFile() of missing file should fail")
	}
}
