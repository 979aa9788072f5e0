// Package dedupe clusters near-identical tracks within one library and
// ranks each cluster by a quality heuristic so cleanup tooling knows which
// member to keep.
package dedupe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rvallat/crossfade/library"
	"github.com/rvallat/crossfade/similarity"
)

// DefaultThreshold is the similarity both the title and the artist must
// clear for two tracks to land in one cluster.
const DefaultThreshold = 0.85

// Quality heuristic weights. The explicit bonus dominates deliberately:
// when a library holds both versions, users keep the uncensored one.
const (
	albumBonus       = 10
	singleBonus      = 5
	durationBonus    = 5
	explicitBonus    = 15
	cleanPenalty     = 3
	catalogBonus     = 8
	minSaneDuration  = 60
	longAlbumNameLen = 10
)

var ErrNilLibrary = errors.New("dedupe: library must not be nil")

// Options configures duplicate detection.
type Options struct {
	// Threshold is the per-signal similarity floor. Zero selects
	// DefaultThreshold.
	Threshold float64

	// Similarity selects the string-similarity backend. Nil uses
	// Jaro-Winkler, which tolerates the suffix noise typical of
	// single-library exports.
	Similarity similarity.Backend
}

func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("dedupe: threshold must be in [0,1], got %v", o.Threshold)
	}
	return nil
}

func (o Options) threshold() float64 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

func (o Options) backend() similarity.Backend {
	if o.Similarity != nil {
		return o.Similarity
	}
	return similarity.JaroWinkler{}
}

// RankedTrack is a cluster member with its computed quality score.
type RankedTrack struct {
	Track        *library.Track
	QualityScore int
}

// DuplicateGroup is one cluster of near-identical tracks, ordered best
// quality first. TitleSimilarity and ArtistSimilarity record the weakest
// pairwise similarity of the cluster against its seed entry.
type DuplicateGroup struct {
	Tracks           []RankedTrack
	TitleSimilarity  float64
	ArtistSimilarity float64
}

// Winner is the member a cleanup action should keep.
func (g DuplicateGroup) Winner() *library.Track {
	return g.Tracks[0].Track
}

// Losers are the members a cleanup action may remove.
func (g DuplicateGroup) Losers() []*library.Track {
	losers := make([]*library.Track, 0, len(g.Tracks)-1)
	for _, rt := range g.Tracks[1:] {
		losers = append(losers, rt.Track)
	}
	return losers
}

// FindDuplicates groups tracks whose title and artist similarity both clear
// the threshold. The scan is greedy and single-pass: each entry seeds at
// most one cluster and grouped entries are never revisited, so clusters
// never overlap. Three-way near-duplicates where one pair just misses the
// threshold can end up under-merged; that limitation is intentional.
func FindDuplicates(lib *library.Library, opts Options) ([]DuplicateGroup, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	backend := opts.backend()
	threshold := opts.threshold()
	tracks := lib.Tracks()

	var groups []DuplicateGroup
	processed := make([]bool, len(tracks))

	for i, seed := range tracks {
		if processed[i] {
			continue
		}

		members := []*library.Track{seed}
		memberIdx := []int{i}
		worstTitle, worstArtist := 1.0, 1.0

		for j := i + 1; j < len(tracks); j++ {
			if processed[j] {
				continue
			}
			other := tracks[j]

			titleSim := backend.Ratio(seed.NormalizedTitle, other.NormalizedTitle)
			artistSim := backend.Ratio(seed.NormalizedArtist, other.NormalizedArtist)
			if titleSim >= threshold && artistSim >= threshold {
				members = append(members, other)
				memberIdx = append(memberIdx, j)
				if titleSim < worstTitle {
					worstTitle = titleSim
				}
				if artistSim < worstArtist {
					worstArtist = artistSim
				}
			}
		}

		if len(members) < 2 {
			continue
		}
		for _, idx := range memberIdx {
			processed[idx] = true
		}
		groups = append(groups, DuplicateGroup{
			Tracks:           rank(members),
			TitleSimilarity:  worstTitle,
			ArtistSimilarity: worstArtist,
		})
	}

	return groups, nil
}

// rank orders cluster members best quality first; ties keep library order.
func rank(members []*library.Track) []RankedTrack {
	ranked := make([]RankedTrack, len(members))
	for i, t := range members {
		ranked[i] = RankedTrack{Track: t, QualityScore: qualityScore(t)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QualityScore > ranked[j].QualityScore
	})
	return ranked
}

func qualityScore(t *library.Track) int {
	score := 0

	if t.Album != "" {
		album := strings.ToLower(t.Album)
		switch {
		case strings.Contains(album, "album") || len(album) > longAlbumNameLen:
			score += albumBonus
		case strings.Contains(album, "single"):
			score += singleBonus
		}
	}

	if t.Duration > minSaneDuration {
		score += durationBonus
	}

	title := strings.ToLower(t.Title)
	if t.Explicit || strings.Contains(title, "explicit") {
		score += explicitBonus
	}
	if strings.Contains(title, "clean") || strings.Contains(title, "radio edit") {
		score -= cleanPenalty
	}

	// A recording identifier marks a catalog-sourced entry rather than a
	// user upload.
	if t.ISRC != "" {
		score += catalogBonus
	}

	return score
}
