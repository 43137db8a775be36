// Package history stores per-run audit records in SQLite. Records describe
// what past scans did; they never feed back into what the next scan fetches,
// which keeps the filesystem itself as the single source of truth.
package history
