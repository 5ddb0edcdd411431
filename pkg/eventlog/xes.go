package eventlog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// xesTimeLayouts are the timestamp layouts accepted on import. BPI Challenge
// exports use RFC 3339 with millisecond precision and a zone offset.
var xesTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02 15:04:05",
}

// ReadFile parses an XES file into a Log.
func ReadFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XES file %q: %w", path, err)
	}
	defer f.Close()

	log, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XES file %q: %w", path, err)
	}
	return log, nil
}

// Read parses an XES document from r into a Log using a streaming decoder,
// so multi-gigabyte logs never need a full DOM in memory.
//
// Only attribute elements (string, boolean, int, float, date, id) are
// interpreted; extensions, globals and classifiers are skipped. Malformed
// numeric or date values degrade to string attributes instead of failing
// the case.
func Read(r io.Reader) (*Log, error) {
	dec := xml.NewDecoder(r)
	log := NewLog()

	var (
		curCase  *Case
		curEvent *Event
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "log":
				// Root element; attributes on the element itself
				// (xes.version etc.) are not log attributes.
			case "trace":
				curCase = &Case{Attributes: make(map[string]string)}
			case "event":
				if curCase == nil {
					// Event outside a trace; skip it.
					if err := dec.Skip(); err != nil {
						return nil, fmt.Errorf("xml decode: %w", err)
					}
					continue
				}
				curEvent = &Event{
					StringAttrs:  make(map[string]string),
					NumericAttrs: make(map[string]float64),
				}
			case "string", "boolean", "int", "float", "date", "id":
				key, value := attrKeyValue(t)
				applyAttribute(log, curCase, curEvent, t.Name.Local, key, value)
				// Drop any nested attribute values; the BPI log has none.
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("xml decode: %w", err)
				}
			case "extension", "global", "classifier", "list", "container":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("xml decode: %w", err)
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "event":
				if curCase != nil && curEvent != nil {
					curCase.Events = append(curCase.Events, *curEvent)
				}
				curEvent = nil
			case "trace":
				if curCase != nil {
					log.Cases = append(log.Cases, curCase)
				}
				curCase = nil
			}
		}
	}

	return log, nil
}

// attrKeyValue extracts the key and value XML attributes of an XES
// attribute element.
func attrKeyValue(el xml.StartElement) (string, string) {
	var key, value string
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "key":
			key = a.Value
		case "value":
			value = a.Value
		}
	}
	return key, value
}

// applyAttribute routes one parsed XES attribute to the log, the current
// case, or the current event, depending on decoder position.
func applyAttribute(log *Log, c *Case, e *Event, typ, key, value string) {
	if key == "" {
		return
	}

	switch {
	case e != nil:
		applyEventAttribute(e, typ, key, value)
	case c != nil:
		c.Attributes[key] = value
		if key == KeyConceptName {
			c.ID = value
		}
	default:
		log.Attributes[key] = value
	}
}

// applyEventAttribute fills the well-known Event fields and falls back to
// the generic attribute maps.
func applyEventAttribute(e *Event, typ, key, value string) {
	switch key {
	case KeyConceptName:
		e.Activity = value
		return
	case KeyResource:
		e.Resource = value
		return
	case KeyRole:
		e.Role = value
		return
	case KeyTimestamp:
		if ts, ok := parseXESTime(value); ok {
			e.Timestamp = ts
			return
		}
		// Unparseable timestamp: keep the raw value so the case still
		// round-trips, ordering is positional anyway.
		e.StringAttrs[key] = value
		return
	}

	switch typ {
	case "int", "float":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			e.NumericAttrs[key] = f
			return
		}
		e.StringAttrs[key] = value
	default:
		e.StringAttrs[key] = value
	}
}

func parseXESTime(value string) (time.Time, bool) {
	for _, layout := range xesTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
