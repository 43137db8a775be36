// Package library walks the music library root and classifies filesystem
// entries into track candidates.
package library
