// Package sidecar manages the on-disk companions of a track: the .lrc
// lyrics file next to it and the cover.jpg in its album directory.
package sidecar
