// Package analysis computes organizational statistics over event logs:
// work handovers between and within roles, and case durations. It operates
// on logs whose events carry a role attribute assigned during
// preprocessing; events without a role are skipped, not counted as
// handovers.
package analysis
