// Command lyrebird scans a music library and fills in missing lyrics and
// cover art from online providers, as sidecar files and embedded tags.
package main
