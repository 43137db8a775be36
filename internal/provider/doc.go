// Package provider abstracts the remote metadata services behind a single
// gateway capability: search for a track, fetch its lyrics, fetch its cover.
//
// Two implementations are selectable by configuration: the TuneHub
// aggregate-search service, which fans a keyword query out across several
// upstream platforms and needs local best-match scoring, and a self-hosted
// LrcApi deployment, which resolves directly from title/artist/album
// parameters. The reconciliation engine never knows which one it talks to.
package provider
