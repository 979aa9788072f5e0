// Package library models streaming-platform exports: tracks with derived
// comparison keys, the library container and the normalization,
// duration-parsing and content-classification primitives everything else
// builds on.
package library

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
)

// Library is an ordered collection of tracks from one platform export.
// The filtered and aggregated views (MusicTracks, ArtistCounts) are cached
// and recomputed whenever a track is added, so they are never stale.
type Library struct {
	Name     string
	Platform string

	tracks       []*Track
	musicTracks  []*Track
	artistCounts map[string]int
	dirty        bool
}

func NewLibrary(name, platform string) *Library {
	return &Library{Name: name, Platform: platform}
}

// AddTrack derives the comparison fields for t, stamps it with the
// library's platform and appends it. Cached views are invalidated.
func (l *Library) AddTrack(t Track) {
	t.Platform = l.Platform
	built := NewTrack(t)
	l.tracks = append(l.tracks, &built)
	l.dirty = true
}

func (l *Library) AddTracks(tracks ...Track) {
	for _, t := range tracks {
		l.AddTrack(t)
	}
}

// Tracks returns all tracks in insertion order.
func (l *Library) Tracks() []*Track {
	return l.tracks
}

// MusicTracks returns tracks classified as music, in insertion order.
func (l *Library) MusicTracks() []*Track {
	l.refresh()
	return l.musicTracks
}

// ArtistCounts maps normalized artist to the number of music tracks.
func (l *Library) ArtistCounts() map[string]int {
	l.refresh()
	return l.artistCounts
}

func (l *Library) refresh() {
	if !l.dirty && l.musicTracks != nil {
		return
	}
	l.musicTracks = make([]*Track, 0, len(l.tracks))
	l.artistCounts = make(map[string]int)
	for _, t := range l.tracks {
		if !t.IsMusic {
			continue
		}
		l.musicTracks = append(l.musicTracks, t)
		l.artistCounts[t.NormalizedArtist]++
	}
	l.dirty = false
}

func (l *Library) TotalTracks() int { return len(l.tracks) }

func (l *Library) MusicCount() int { return len(l.MusicTracks()) }

func (l *Library) NonMusicCount() int { return l.TotalTracks() - l.MusicCount() }

// ArtistCount pairs a normalized artist name with its music-track count.
type ArtistCount struct {
	Artist string
	Count  int
}

// TopArtists returns the n artists with the most music tracks, ties broken
// alphabetically for stable output.
func (l *Library) TopArtists(n int) []ArtistCount {
	counts := l.ArtistCounts()
	out := make([]ArtistCount, 0, len(counts))
	for artist, count := range counts {
		out = append(out, ArtistCount{Artist: artist, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Artist < out[j].Artist
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Stats is a snapshot of library-level statistics.
type Stats struct {
	Name           string
	Platform       string
	TotalTracks    int
	MusicTracks    int
	NonMusicTracks int
	UniqueArtists  int
	TopArtists     []ArtistCount
}

func (l *Library) Stats() Stats {
	return Stats{
		Name:           l.Name,
		Platform:       l.Platform,
		TotalTracks:    l.TotalTracks(),
		MusicTracks:    l.MusicCount(),
		NonMusicTracks: l.NonMusicCount(),
		UniqueArtists:  len(l.ArtistCounts()),
		TopArtists:     l.TopArtists(5),
	}
}

// Summary renders a short human-readable description of the library.
func (s Stats) Summary() string {
	return fmt.Sprintf("%s (%s): %s tracks, %s music, %s artists",
		s.Name, s.Platform,
		humanize.Comma(int64(s.TotalTracks)),
		humanize.Comma(int64(s.MusicTracks)),
		humanize.Comma(int64(s.UniqueArtists)))
}
