package eventlog

import "time"

// FilterStartActivity returns a log containing only the cases whose first
// event matches one of the given activities exactly. Cases without events
// are dropped.
func FilterStartActivity(log *Log, activities ...string) *Log {
	allowed := make(map[string]bool, len(activities))
	for _, a := range activities {
		allowed[a] = true
	}

	var kept []*Case
	for _, c := range log.Cases {
		if len(c.Events) == 0 {
			continue
		}
		if allowed[c.Events[0].Activity] {
			kept = append(kept, c)
		}
	}
	return log.Derive(kept)
}

// FilterTimeRange returns a log containing only the cases fully contained
// in [start, end]: every timestamped event must fall inside the range.
// Cases without any timestamped event are kept, matching the reference
// behavior of ignoring what cannot be compared.
func FilterTimeRange(log *Log, start, end time.Time) *Log {
	var kept []*Case
	for _, c := range log.Cases {
		if caseContained(c, start, end) {
			kept = append(kept, c)
		}
	}
	return log.Derive(kept)
}

func caseContained(c *Case, start, end time.Time) bool {
	for i := range c.Events {
		ts := c.Events[i].Timestamp
		if ts.IsZero() {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			return false
		}
	}
	return true
}

// GroupByAttribute partitions a log's cases by the value of a case
// attribute. groups maps a group name to the attribute values it covers;
// cases whose attribute matches none of the groups are returned under the
// rest log.
func GroupByAttribute(log *Log, attribute string, groups map[string][]string) (map[string]*Log, *Log) {
	valueToGroup := make(map[string]string)
	for group, values := range groups {
		for _, v := range values {
			valueToGroup[v] = group
		}
	}

	grouped := make(map[string][]*Case, len(groups))
	var rest []*Case

	for _, c := range log.Cases {
		value, ok := c.Attr(attribute)
		if !ok {
			rest = append(rest, c)
			continue
		}
		group, ok := valueToGroup[value]
		if !ok {
			rest = append(rest, c)
			continue
		}
		grouped[group] = append(grouped[group], c)
	}

	logs := make(map[string]*Log, len(grouped))
	for group, cases := range grouped {
		logs[group] = log.Derive(cases)
	}
	return logs, log.Derive(rest)
}
