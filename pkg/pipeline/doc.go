// Package pipeline orchestrates batch compliance runs: it scans the input
// directory for category logs, drives the engine over every case, writes
// the partitioned logs and summaries, and optionally persists verdicts and
// records metrics.
//
// A run never aborts on a bad file. Files whose category cannot be
// inferred are skipped; files that fail to load or evaluate are reported
// in the summary with their error. Watch mode re-runs the batch when new
// logs land in the input directory; schedule mode re-runs it on a cron
// expression.
package pipeline
