// Package reconcile contains the engine that orchestrates a scan pass:
// resolve identity, inspect existing state, plan fetches, call the provider,
// and write sidecars and embedded tags without corrupting files or
// re-downloading what is already present.
package reconcile
