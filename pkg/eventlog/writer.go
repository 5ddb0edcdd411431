package eventlog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// xesTimestampLayout is the layout used on export, matching the millisecond
// precision of the source logs.
const xesTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// WriteFile serializes the log to an XES file, creating parent directories
// as needed.
func WriteFile(log *Log, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create XES file %q: %w", path, err)
	}
	defer f.Close()

	if err := Write(log, f); err != nil {
		return fmt.Errorf("failed to write XES file %q: %w", path, err)
	}
	return nil
}

// Write serializes the log as an XES document. Attribute maps are emitted
// in sorted key order so output is deterministic.
func Write(log *Log, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")

	root := xml.StartElement{
		Name: xml.Name{Local: "log"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xes.version"}, Value: "1.0"},
			{Name: xml.Name{Local: "xes.features"}, Value: ""},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	if err := encodeStringAttrs(enc, log.Attributes, nil); err != nil {
		return err
	}

	for _, c := range log.Cases {
		trace := xml.StartElement{Name: xml.Name{Local: "trace"}}
		if err := enc.EncodeToken(trace); err != nil {
			return err
		}
		if err := encodeStringAttrs(enc, c.Attributes, nil); err != nil {
			return err
		}
		for i := range c.Events {
			if err := encodeEvent(enc, &c.Events[i]); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(trace.End()); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeEvent(enc *xml.Encoder, e *Event) error {
	ev := xml.StartElement{Name: xml.Name{Local: "event"}}
	if err := enc.EncodeToken(ev); err != nil {
		return err
	}

	if e.Activity != "" {
		if err := encodeAttr(enc, "string", KeyConceptName, e.Activity); err != nil {
			return err
		}
	}
	if !e.Timestamp.IsZero() {
		if err := encodeAttr(enc, "date", KeyTimestamp, e.Timestamp.Format(xesTimestampLayout)); err != nil {
			return err
		}
	}
	if e.Resource != "" {
		if err := encodeAttr(enc, "string", KeyResource, e.Resource); err != nil {
			return err
		}
	}
	if e.Role != "" {
		if err := encodeAttr(enc, "string", KeyRole, e.Role); err != nil {
			return err
		}
	}

	skip := map[string]bool{
		KeyConceptName: true,
		KeyTimestamp:   true,
		KeyResource:    true,
		KeyRole:        true,
	}
	if err := encodeStringAttrs(enc, e.StringAttrs, skip); err != nil {
		return err
	}

	for _, key := range sortedKeys(e.NumericAttrs) {
		v := strconv.FormatFloat(e.NumericAttrs[key], 'f', -1, 64)
		if err := encodeAttr(enc, "float", key, v); err != nil {
			return err
		}
	}

	return enc.EncodeToken(ev.End())
}

func encodeStringAttrs(enc *xml.Encoder, attrs map[string]string, skip map[string]bool) error {
	for _, key := range sortedKeys(attrs) {
		if skip[key] {
			continue
		}
		if err := encodeAttr(enc, "string", key, attrs[key]); err != nil {
			return err
		}
	}
	return nil
}

func encodeAttr(enc *xml.Encoder, typ, key, value string) error {
	el := xml.StartElement{
		Name: xml.Name{Local: typ},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "key"}, Value: key},
			{Name: xml.Name{Local: "value"}, Value: value},
		},
	}
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	return enc.EncodeToken(el.End())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
