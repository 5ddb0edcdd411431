// Package report turns streams of (case, verdict) pairs into the batch
// outputs: partitioned compliant/non-compliant event logs, per-category
// JSON summaries, and CSV frequency tables.
//
// The exporters follow a writer-based contract so callers decide where
// output lands (files, buffers in tests). A failed category appears in the
// summary with its error and zero counts instead of aborting the batch.
package report
