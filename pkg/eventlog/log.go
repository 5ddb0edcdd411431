package eventlog

import (
	"strconv"
	"strings"
	"time"
)

// Well-known XES attribute keys.
const (
	// KeyConceptName holds the case ID at trace level and the activity
	// name at event level.
	KeyConceptName = "concept:name"

	// KeyTimestamp holds the event timestamp.
	KeyTimestamp = "time:timestamp"

	// KeyResource holds the resource (user) that executed the event.
	KeyResource = "org:resource"

	// KeyRole holds the organizational role assigned to the resource
	// during preprocessing.
	KeyRole = "userRole"

	// KeyCumulativeNetWorth holds the running monetary total recorded
	// against the purchase-order line item.
	KeyCumulativeNetWorth = "Cumulative net worth (EUR)"

	// KeyItemCategory holds the procurement flow label of the case.
	KeyItemCategory = "Item Category"
)

// Event is one recorded activity occurrence within a Case.
type Event struct {
	// Activity is the business action name (concept:name).
	Activity string

	// Timestamp is the recorded occurrence time. It is kept for duration
	// statistics and round-tripping; ordering checks rely on event
	// position, not on timestamp comparison.
	Timestamp time.Time

	// Resource is the user or batch account that executed the activity.
	Resource string

	// Role is the organizational role of the resource, when assigned.
	Role string

	// StringAttrs holds any further string/boolean/date attributes, with
	// booleans and dates kept in their textual form.
	StringAttrs map[string]string

	// NumericAttrs holds int and float attributes, including the
	// cumulative net worth field.
	NumericAttrs map[string]float64
}

// HasNumeric reports whether the event carries the named numeric attribute.
func (e *Event) HasNumeric(key string) bool {
	_, ok := e.NumericAttrs[key]
	return ok
}

// Case represents one purchase-order line item's lifecycle. Attributes are
// set once at load time; Events are append-only during construction and
// read-only afterwards.
type Case struct {
	// ID is the case identifier (trace concept:name).
	ID string

	// Attributes maps case-level attribute names to their textual values.
	// Boolean attributes are stored as "true"/"false" strings.
	Attributes map[string]string

	// Events is the ordered activity sequence; insertion order is
	// chronological order.
	Events []Event
}

// ActivityNames returns each event's activity name in case order.
func (c *Case) ActivityNames() []string {
	names := make([]string, 0, len(c.Events))
	for i := range c.Events {
		names = append(names, c.Events[i].Activity)
	}
	return names
}

// CumulativeValues returns the "Cumulative net worth (EUR)" value of every
// event that carries it, in case order. The last element is treated as the
// case's final monetary value.
func (c *Case) CumulativeValues() []float64 {
	var values []float64
	for i := range c.Events {
		if v, ok := c.Events[i].NumericAttrs[KeyCumulativeNetWorth]; ok {
			values = append(values, v)
		}
	}
	return values
}

// Attr returns the named case attribute and whether it is present.
func (c *Case) Attr(name string) (string, bool) {
	v, ok := c.Attributes[name]
	return v, ok
}

// BoolAttr reads a case attribute as a boolean by case-insensitive string
// comparison against "true". A missing attribute resolves to def; the
// default differs per rule, so it is always supplied by the caller.
func (c *Case) BoolAttr(name string, def bool) bool {
	v, ok := c.Attributes[name]
	if !ok {
		return def
	}
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// FloatAttr reads a case attribute as a float. Missing or malformed values
// resolve to def rather than an error.
func (c *Case) FloatAttr(name string, def float64) float64 {
	v, ok := c.Attributes[name]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Duration returns the case duration as the span between the earliest and
// latest event timestamps. Cases with fewer than two timestamped events
// have zero duration.
func (c *Case) Duration() time.Duration {
	var first, last time.Time
	seen := 0
	for i := range c.Events {
		ts := c.Events[i].Timestamp
		if ts.IsZero() {
			continue
		}
		if seen == 0 {
			first, last = ts, ts
		} else {
			if ts.Before(first) {
				first = ts
			}
			if ts.After(last) {
				last = ts
			}
		}
		seen++
	}
	if seen < 2 {
		return 0
	}
	return last.Sub(first)
}

// Log is an ordered collection of Cases plus log-level attributes.
type Log struct {
	// Attributes holds log-level attributes, preserved across filtering
	// so partitioned outputs keep the source log's metadata.
	Attributes map[string]string

	// Cases holds the cases in file order.
	Cases []*Case
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{Attributes: make(map[string]string)}
}

// Derive returns a new log that shares this log's attributes and holds the
// given cases. Cases are shared by reference; they are read-only after
// loading, so sharing is safe.
func (l *Log) Derive(cases []*Case) *Log {
	attrs := make(map[string]string, len(l.Attributes))
	for k, v := range l.Attributes {
		attrs[k] = v
	}
	return &Log{Attributes: attrs, Cases: cases}
}

// EventCount returns the total number of events across all cases.
func (l *Log) EventCount() int {
	n := 0
	for _, c := range l.Cases {
		n += len(c.Events)
	}
	return n
}
