package library

// Track is a single entry from a streaming-platform export. It is treated
// as immutable once built: the normalized fields are computed in NewTrack
// and are a pure function of the raw fields, so two tracks with the same
// raw title/artist/duration always carry identical derived fields.
type Track struct {
	Title       string
	Artist      string
	Album       string
	Duration    int // seconds, 0 when unknown
	ISRC        string
	Platform    string
	TrackID     string
	URL         string
	Year        int
	Genre       string
	TrackNumber int
	Explicit    bool

	// Derived at construction, never set by callers.
	NormalizedTitle  string
	NormalizedArtist string
	ArtistTokens     map[string]struct{}
	IsMusic          bool
}

// NewTrack fills in the derived comparison fields for a raw track.
// Existing values in the derived fields are discarded.
func NewTrack(t Track) Track {
	t.NormalizedTitle = NormalizeTitle(t.Title)
	t.NormalizedArtist = NormalizeArtist(t.Artist)
	t.ArtistTokens = ArtistTokens(t.Artist)
	t.IsMusic = IsMusicContent(t.Title, t.Artist)
	return t
}

// Key identifies a recording by its normalized title and artist. Tracks
// sharing a Key are treated as the same recording in cross-library set
// operations (universal/unique track analysis).
type Key struct {
	Title  string
	Artist string
}

func (t *Track) Key() Key {
	return Key{Title: t.NormalizedTitle, Artist: t.NormalizedArtist}
}
