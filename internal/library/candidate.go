package library

// Kind distinguishes the two media entry flavors the pipeline processes.
type Kind int

const (
	// KindAudio is a regular audio file with native tag support.
	KindAudio Kind = iota
	// KindSTRM is a plain-text pointer file referencing remote audio.
	// STRM files carry no embedded tags and are never tag-written.
	KindSTRM
)

// String returns the lowercase kind label used in logs.
func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindSTRM:
		return "strm"
	default:
		return "unknown"
	}
}

// Candidate describes one library entry accepted by the classifier.
// It is immutable once constructed.
type Candidate struct {
	// Path is the absolute path of the entry.
	Path string
	// Kind reports whether the entry is audio or a STRM pointer.
	Kind Kind
	// FolderChain holds ancestor directory names between the library root
	// and the file, ordered from the root downward. A track at
	// root/Artist/Album/Song.mp3 yields ["Artist", "Album"].
	FolderChain []string
	// Stem is the base filename without its extension.
	Stem string
}

// Dir returns the directory containing the candidate.
func (c Candidate) Dir() string {
	return dirOf(c.Path)
}
