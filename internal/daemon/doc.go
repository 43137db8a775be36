// Package daemon wraps the reconciliation engine in a long-running loop with
// single-instance locking and optional run persistence.
package daemon
