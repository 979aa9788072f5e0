package match

import (
	"errors"
	"sort"

	"github.com/rvallat/crossfade/library"
)

var ErrTooFewLibraries = errors.New("match: analysis needs at least 2 libraries")

// PairwiseComparison is one source→target comparison inside an analysis.
type PairwiseComparison struct {
	Source string
	Target string
	Stats  Stats
}

// TrackRef is a lightweight reference to a track inside analysis output.
type TrackRef struct {
	Title  string
	Artist string
	Album  string
}

// UniversalTrack is a recording present in every analyzed library,
// represented by its first-library occurrence.
type UniversalTrack struct {
	Title     string
	Artist    string
	Album     string
	AppearsIn int
}

// ArtistAnalysis summarizes artist overlap across libraries. Artist names
// are normalized keys.
type ArtistAnalysis struct {
	TotalUniqueArtists int
	UniversalArtists   []string
	LibraryArtists     map[string]int
	TopOverlapArtists  []library.ArtistCount
}

// Analysis is the multi-library overlap report.
type Analysis struct {
	Libraries       []library.Stats
	Pairwise        []PairwiseComparison
	UniversalTracks []UniversalTrack
	UniqueTracks    map[string][]TrackRef
	Artists         ArtistAnalysis
}

// Analyze composes pairwise comparisons over every library pair, finds
// recordings and artists present in all libraries, and recordings unique
// to each. Fewer than two libraries is caller misuse and fails fast.
func (c *Comparator) Analyze(libs []*library.Library) (*Analysis, error) {
	if len(libs) < 2 {
		return nil, ErrTooFewLibraries
	}
	for _, lib := range libs {
		if lib == nil {
			return nil, ErrNilLibrary
		}
	}

	a := &Analysis{UniqueTracks: make(map[string][]TrackRef)}

	for _, lib := range libs {
		a.Libraries = append(a.Libraries, lib.Stats())
	}

	for i := 0; i < len(libs); i++ {
		for j := i + 1; j < len(libs); j++ {
			result, err := c.Compare(libs[i], libs[j])
			if err != nil {
				return nil, err
			}
			a.Pairwise = append(a.Pairwise, PairwiseComparison{
				Source: libs[i].Name,
				Target: libs[j].Name,
				Stats:  result.Stats(),
			})
		}
	}

	a.UniversalTracks = universalTracks(libs)
	for _, lib := range libs {
		a.UniqueTracks[lib.Name] = uniqueTracks(lib, libs)
	}
	a.Artists = analyzeArtists(libs)

	return a, nil
}

func keySet(lib *library.Library) map[library.Key]struct{} {
	keys := make(map[library.Key]struct{})
	for _, t := range lib.MusicTracks() {
		keys[t.Key()] = struct{}{}
	}
	return keys
}

// universalTracks intersects normalized keys across all libraries; each
// surviving key is represented by its first occurrence in the first
// library.
func universalTracks(libs []*library.Library) []UniversalTrack {
	universal := keySet(libs[0])
	for _, lib := range libs[1:] {
		other := keySet(lib)
		for key := range universal {
			if _, ok := other[key]; !ok {
				delete(universal, key)
			}
		}
	}

	var out []UniversalTrack
	seen := make(map[library.Key]struct{})
	for _, t := range libs[0].MusicTracks() {
		key := t.Key()
		if _, ok := universal[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, UniversalTrack{
			Title:     t.Title,
			Artist:    t.Artist,
			Album:     t.Album,
			AppearsIn: len(libs),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Artist != out[j].Artist {
			return out[i].Artist < out[j].Artist
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// uniqueTracks returns recordings of lib found in no other library.
func uniqueTracks(lib *library.Library, libs []*library.Library) []TrackRef {
	others := make(map[library.Key]struct{})
	for _, other := range libs {
		if other == lib {
			continue
		}
		for key := range keySet(other) {
			others[key] = struct{}{}
		}
	}

	var out []TrackRef
	seen := make(map[library.Key]struct{})
	for _, t := range lib.MusicTracks() {
		key := t.Key()
		if _, shared := others[key]; shared {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, TrackRef{Title: t.Title, Artist: t.Artist, Album: t.Album})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Artist != out[j].Artist {
			return out[i].Artist < out[j].Artist
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func analyzeArtists(libs []*library.Library) ArtistAnalysis {
	analysis := ArtistAnalysis{LibraryArtists: make(map[string]int)}

	allArtists := make(map[string]struct{})
	perLibrary := make([]map[string]int, len(libs))
	for i, lib := range libs {
		counts := lib.ArtistCounts()
		perLibrary[i] = counts
		analysis.LibraryArtists[lib.Name] = len(counts)
		for artist := range counts {
			allArtists[artist] = struct{}{}
		}
	}
	analysis.TotalUniqueArtists = len(allArtists)

	for artist := range perLibrary[0] {
		inAll := true
		for _, counts := range perLibrary[1:] {
			if _, ok := counts[artist]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			analysis.UniversalArtists = append(analysis.UniversalArtists, artist)
		}
	}
	sort.Strings(analysis.UniversalArtists)

	totals := make(map[string]int)
	for _, counts := range perLibrary {
		for artist, count := range counts {
			totals[artist] += count
		}
	}
	top := make([]library.ArtistCount, 0, len(totals))
	for artist, count := range totals {
		top = append(top, library.ArtistCount{Artist: artist, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Artist < top[j].Artist
	})
	if len(top) > 20 {
		top = top[:20]
	}
	analysis.TopOverlapArtists = top

	return analysis
}
