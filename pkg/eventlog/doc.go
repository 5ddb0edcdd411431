// Package eventlog provides the event log data model and XES file handling
// for purchase-order process logs.
//
// # Data Model
//
// A Log is an ordered collection of Cases. Each Case represents one
// purchase-order line item's lifecycle: a set of case-level attributes set
// once at load time, plus an ordered sequence of Events. Event order in the
// file is trusted as chronological order; the BPI Challenge 2019 exports
// are timestamp-sorted.
//
// # XES Support
//
// ReadFile and WriteFile implement the subset of IEEE XES used by the BPI
// Challenge 2019 log: string, boolean, int, float and date attributes at
// log, trace and event level. Unrecognized elements (extensions, globals,
// classifiers) are skipped on read and not reproduced on write.
//
// # Filters
//
// The package also provides the case-level filters used to prepare the
// master log for analysis: start-activity filtering, contained time-range
// filtering, grouping by the "Item Category" attribute, and variant
// (activity-sequence) filtering by coverage or top-N frequency.
package eventlog
