// Package preflight validates the environment before a scan: library and
// state directories, free disk space, and provider reachability. Checks
// report findings; callers decide whether a failure blocks the run.
package preflight
