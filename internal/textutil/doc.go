// Package textutil provides text normalization and similarity helpers used by
// match scoring.
//
// Normalization applies full Unicode case folding and whitespace collapsing so
// provider results and locally derived metadata compare consistently.
// Fingerprints are term-frequency vectors compared by cosine similarity.
package textutil
