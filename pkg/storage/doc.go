// Package storage persists compliance verdicts so past batch runs can be
// re-queried without re-parsing multi-gigabyte XES files.
//
// Two backends implement the Store interface:
//
//   - SQLite: embedded database for real runs (modernc driver, no cgo)
//   - Memory: in-memory map for tests
//
// Verdicts are grouped by run ID; every batch run writes its verdicts
// under one freshly generated ID, and queries can filter by run, category
// and compliance result.
package storage
