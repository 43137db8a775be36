package logging

// Standardized structured logging keys shared across components.
const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldRunID carries the scan run identifier.
	FieldRunID = "run_id"
	// FieldTrack carries the absolute path of the track being processed.
	FieldTrack = "track"
	// FieldArtist carries the resolved artist.
	FieldArtist = "artist"
	// FieldTitle carries the resolved title.
	FieldTitle = "title"
	// FieldAlbum carries the resolved album.
	FieldAlbum = "album"
	// FieldProvider names the metadata provider in use.
	FieldProvider = "provider"
	// FieldOutcome carries the terminal state of a track.
	FieldOutcome = "outcome"
)
