// Package tunehub provides the minimal TuneHub API client used for
// aggregate search and lyrics/cover retrieval.
package tunehub
