package match

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/rvallat/crossfade/library"
)

// Fallback bounds keeping the candidate search space finite when the word
// indices produce nothing useful.
const (
	noPostingsLimit = 50
	minWordLen      = 3
)

type baseKey struct {
	title  string
	artist string
}

// Index holds the lookup structures for one target library: an exact-hash
// index over normalized title|artist, an ISRC index, word-inverted indices
// for candidate pre-filtering and base-title buckets for the
// version-insensitive tier. Build once per target; rebuild if the backing
// library changes. Not safe to mutate concurrently with lookups.
type Index struct {
	exact       map[string][]*library.Track
	isrc        map[string]*library.Track
	titleWords  map[string][]*library.Track
	artistWords map[string][]*library.Track
	base        map[baseKey][]*library.Track

	all []*library.Track // music tracks in library order

	isrcCollisions int
}

// NewIndex builds the lookup structures over the library's music tracks.
func NewIndex(lib *library.Library) *Index {
	ix := &Index{
		exact:       make(map[string][]*library.Track),
		isrc:        make(map[string]*library.Track),
		titleWords:  make(map[string][]*library.Track),
		artistWords: make(map[string][]*library.Track),
		base:        make(map[baseKey][]*library.Track),
	}

	for _, t := range lib.MusicTracks() {
		ix.all = append(ix.all, t)

		if h := exactHash(t); h != "" {
			ix.exact[h] = append(ix.exact[h], t)
		}

		if t.ISRC != "" {
			key := strings.ToUpper(strings.TrimSpace(t.ISRC))
			if _, dup := ix.isrc[key]; dup {
				// Well-formed data never collides here; count it as a
				// data-quality signal and keep the latest entry.
				ix.isrcCollisions++
			}
			ix.isrc[key] = t
		}

		for _, word := range strings.Fields(t.NormalizedTitle) {
			if len(word) >= minWordLen {
				ix.titleWords[word] = append(ix.titleWords[word], t)
			}
		}
		for _, word := range strings.Fields(t.NormalizedArtist) {
			if len(word) >= minWordLen {
				ix.artistWords[word] = append(ix.artistWords[word], t)
			}
		}

		bk := baseKey{
			title:  library.StripVersionTokens(t.NormalizedTitle),
			artist: t.NormalizedArtist,
		}
		ix.base[bk] = append(ix.base[bk], t)
	}

	return ix
}

// exactHash digests normalized title|artist into the exact-match key.
// Tracks missing either field hash to "" and are excluded from the index.
func exactHash(t *library.Track) string {
	if t.NormalizedTitle == "" || t.NormalizedArtist == "" {
		return ""
	}
	sum := md5.Sum([]byte(t.NormalizedTitle + "|" + t.NormalizedArtist))
	return hex.EncodeToString(sum[:])
}

// ExactBucket returns all tracks sharing the query's exact-hash key.
func (ix *Index) ExactBucket(t *library.Track) []*library.Track {
	h := exactHash(t)
	if h == "" {
		return nil
	}
	return ix.exact[h]
}

// ByISRC looks up a track by identifier, case- and whitespace-insensitive.
func (ix *Index) ByISRC(isrc string) (*library.Track, bool) {
	if isrc == "" {
		return nil, false
	}
	t, ok := ix.isrc[strings.ToUpper(strings.TrimSpace(isrc))]
	return t, ok
}

// BaseBucket returns tracks whose version-stripped title and normalized
// artist match the given base key.
func (ix *Index) BaseBucket(baseTitle, normalizedArtist string) []*library.Track {
	return ix.base[baseKey{title: baseTitle, artist: normalizedArtist}]
}

// Candidates returns the pre-filtered search set for an open fuzzy pass:
// the union of word-inverted postings for the query's title and artist
// tokens, in library order. When no posting matches, a bounded prefix of
// the collection is returned instead, so the search space is never
// unbounded and the worst case stays linear but small.
func (ix *Index) Candidates(t *library.Track) []*library.Track {
	hits := make(map[*library.Track]struct{})

	for _, word := range strings.Fields(t.NormalizedTitle) {
		if len(word) < minWordLen {
			continue
		}
		for _, hit := range ix.titleWords[word] {
			hits[hit] = struct{}{}
		}
	}
	for _, word := range strings.Fields(t.NormalizedArtist) {
		if len(word) < minWordLen {
			continue
		}
		for _, hit := range ix.artistWords[word] {
			hits[hit] = struct{}{}
		}
	}

	if len(hits) > 0 {
		filtered := make([]*library.Track, 0, len(hits))
		for _, candidate := range ix.all {
			if _, ok := hits[candidate]; ok {
				filtered = append(filtered, candidate)
			}
		}
		return filtered
	}

	limit := noPostingsLimit
	if limit > len(ix.all) {
		limit = len(ix.all)
	}
	return ix.all[:limit]
}

// Size reports the number of indexed music tracks.
func (ix *Index) Size() int { return len(ix.all) }

// ISRCCollisions reports how many indexed tracks shared an identifier with
// an earlier one. Nonzero values indicate a data-quality problem in the
// target export, not a matching fault.
func (ix *Index) ISRCCollisions() int { return ix.isrcCollisions }
