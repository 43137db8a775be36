// Package identity derives the canonical artist/album/title triple for a
// track from embedded tags, folder structure, and filename heuristics.
package identity
