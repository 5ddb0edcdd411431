// Poaudit is a compliance analysis toolkit for BPI Challenge 2019
// purchase-order event logs.
//
// It splits the master log by procurement category, checks every case
// against its category's compliance rules, partitions the logs into
// compliant and non-compliant cases, and computes supporting statistics
// (variants, role handovers).
//
// Usage:
//
//	# Run the compliance batch over the filtered category logs
//	poaudit filter
//
//	# Run with a custom configuration file
//	poaudit filter --config /path/to/config.yaml
//
//	# Keep running and re-filter whenever new logs arrive
//	poaudit filter --watch
//
//	# Split the master log into per-category logs
//	poaudit split --input data/BPI_Challenge_2019.xes
//
//	# Keep only the variants covering 80% of cases
//	poaudit variants --coverage 80
//
//	# Compute role handover statistics
//	poaudit handover
//
//	# Query verdicts of a past run
//	poaudit query --run <run-id> --non-compliant
package main

func main() {
	Execute()
}
