package match

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/rvallat/crossfade/library"
)

// Type tags how a match was resolved.
type Type string

const (
	TypeISRC  Type = "isrc"
	TypeExact Type = "exact"
	TypeFuzzy Type = "fuzzy"
)

// Result pairs a source track with its accepted target-library match.
// Both tracks are referenced, not copied.
type Result struct {
	Source     *library.Track
	Target     *library.Track
	Confidence float64
	Type       Type
}

// ComparisonResult holds the full outcome of one source→target pass:
// accepted matches, source tracks without any acceptable candidate and the
// aggregate statistics derived from them. It is immutable once returned.
type ComparisonResult struct {
	SourceLibrary string
	TargetLibrary string

	TotalSourceTracks int
	TotalTargetTracks int
	MusicSourceTracks int
	MusicTargetTracks int

	Matches       []Result
	MissingTracks []*library.Track

	ExactMatches  int
	FuzzyMatches  int
	ISRCMatches   int
	TotalMatches  int
	MatchRate     float64 // matches / source music tracks
	AvgConfidence float64
}

func newComparisonResult(source, target *library.Library, matches []Result, missing []*library.Track) *ComparisonResult {
	r := &ComparisonResult{
		SourceLibrary:     source.Name,
		TargetLibrary:     target.Name,
		TotalSourceTracks: source.TotalTracks(),
		TotalTargetTracks: target.TotalTracks(),
		MusicSourceTracks: source.MusicCount(),
		MusicTargetTracks: target.MusicCount(),
		Matches:           matches,
		MissingTracks:     missing,
		TotalMatches:      len(matches),
	}

	var confidenceSum float64
	for _, m := range matches {
		switch m.Type {
		case TypeExact:
			r.ExactMatches++
		case TypeFuzzy:
			r.FuzzyMatches++
		case TypeISRC:
			r.ISRCMatches++
		}
		confidenceSum += m.Confidence
	}
	if len(matches) > 0 {
		r.AvgConfidence = confidenceSum / float64(len(matches))
	}
	if r.MusicSourceTracks > 0 {
		r.MatchRate = float64(r.TotalMatches) / float64(r.MusicSourceTracks)
	}
	return r
}

// Stats is the stable statistics projection of a comparison, intended for
// direct serialization by callers.
type Stats struct {
	SourceLibrary     string  `json:"source_library"`
	TargetLibrary     string  `json:"target_library"`
	TotalSourceTracks int     `json:"total_source_tracks"`
	TotalTargetTracks int     `json:"total_target_tracks"`
	MusicSourceTracks int     `json:"music_source_tracks"`
	MusicTargetTracks int     `json:"music_target_tracks"`
	TotalMatches      int     `json:"total_matches"`
	ExactMatches      int     `json:"exact_matches"`
	FuzzyMatches      int     `json:"fuzzy_matches"`
	ISRCMatches       int     `json:"isrc_matches"`
	MissingTracks     int     `json:"missing_tracks"`
	MatchRate         float64 `json:"match_rate"`
	AvgConfidence     float64 `json:"avg_confidence"`
}

func (r *ComparisonResult) Stats() Stats {
	return Stats{
		SourceLibrary:     r.SourceLibrary,
		TargetLibrary:     r.TargetLibrary,
		TotalSourceTracks: r.TotalSourceTracks,
		TotalTargetTracks: r.TotalTargetTracks,
		MusicSourceTracks: r.MusicSourceTracks,
		MusicTargetTracks: r.MusicTargetTracks,
		TotalMatches:      r.TotalMatches,
		ExactMatches:      r.ExactMatches,
		FuzzyMatches:      r.FuzzyMatches,
		ISRCMatches:       r.ISRCMatches,
		MissingTracks:     len(r.MissingTracks),
		MatchRate:         r.MatchRate,
		AvgConfidence:     r.AvgConfidence,
	}
}

// Summary renders a one-line human-readable digest of the pass.
func (r *ComparisonResult) Summary() string {
	return fmt.Sprintf("%s → %s: %s of %s tracks matched (%.1f%%, avg confidence %.2f)",
		r.SourceLibrary, r.TargetLibrary,
		humanize.Comma(int64(r.TotalMatches)),
		humanize.Comma(int64(r.MusicSourceTracks)),
		r.MatchRate*100, r.AvgConfidence)
}
