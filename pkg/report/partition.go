package report

import (
	"fmt"

	"infoprom/poaudit/pkg/compliance"
	"infoprom/poaudit/pkg/eventlog"
)

// Partition splits a log into a compliant and a non-compliant log based on
// the verdicts, which must be in case order (one verdict per case, as
// produced by Engine.EvaluateLog). Cases are shared by reference; both
// partitions keep the source log's attributes.
func Partition(log *eventlog.Log, verdicts []*compliance.Verdict) (compliant, nonCompliant *eventlog.Log, err error) {
	if len(log.Cases) != len(verdicts) {
		return nil, nil, fmt.Errorf("verdict count %d does not match case count %d", len(verdicts), len(log.Cases))
	}

	var compliantCases, nonCompliantCases []*eventlog.Case
	for i, c := range log.Cases {
		if verdicts[i].Compliant {
			compliantCases = append(compliantCases, c)
		} else {
			nonCompliantCases = append(nonCompliantCases, c)
		}
	}
	return log.Derive(compliantCases), log.Derive(nonCompliantCases), nil
}
