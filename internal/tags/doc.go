// Package tags reads and writes the narrow embedded-metadata subset the
// pipeline cares about: artist, title, album, lyrics, and front-cover art.
//
// Reading goes through a single probing API regardless of container. Writing
// dispatches to the container's native mechanism: ID3v2 for MP3, vorbis
// comments and picture blocks for FLAC, and iTunes-style atoms for M4A/MP4.
package tags
