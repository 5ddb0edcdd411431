// Package compliance implements the purchase-order compliance rule engine.
//
// # Overview
//
// The engine evaluates each case of a BPI Challenge 2019 event log against
// the rule set of its procurement category and produces a Verdict: a
// compliant/non-compliant decision plus the full list of violation reasons.
// Four procurement flows are recognized:
//
//   - 3-way match, invoice after goods receipt
//   - 3-way match, invoice before goods receipt
//   - 2-way match
//   - Consignment
//
// Every applicable check runs; violations accumulate instead of
// short-circuiting, so reporting can attribute non-compliance to multiple
// simultaneous causes.
//
// # Evaluation Model
//
// Evaluation is a pure function of the case content and the immutable
// pattern configuration. Cases are never mutated, no state is kept between
// cases, and an Engine is safe for concurrent use. The only hard error is
// an unrecognized category; missing or malformed case attributes resolve
// to rule-specific defaults.
//
// # Activity Matching
//
// Activity checks use case-insensitive substring matching against the
// configured pattern table: "Record Goods Receipt for PO" matches the
// pattern "Record Goods Receipt". Sequence checks compare the last
// occurrence of the first activity group against the first occurrence of
// the second, so a single out-of-order repeat is enough to flag a
// violation; a group with no occurrences can never violate an ordering
// constraint.
package compliance
