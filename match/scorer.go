package match

import (
	"strings"

	"github.com/rvallat/crossfade/library"
	"github.com/rvallat/crossfade/similarity"
)

// Signal weights. Title and artist carry most of the discriminative power;
// album and duration only nudge the blend. Weights of absent or disabled
// signals are dropped and the remainder renormalized.
const (
	titleWeight    = 0.45
	artistWeight   = 0.35
	albumWeight    = 0.10
	durationWeight = 0.05

	albumFloor         = 0.8
	artistSubsetBonus  = 0.3
	shortTitleWords    = 3
	titleBoostFactor   = 1.02
	earlyStopThreshold = 0.98
)

// Scorer computes a graded match confidence in [0,1] between two tracks.
// It memoizes raw string-similarity lookups; a Scorer is not safe for
// concurrent use, construct one per comparison pass.
type Scorer struct {
	opts Options
	th   thresholds
	sim  similarity.Backend

	simCache map[[2]string]float64
}

func NewScorer(opts Options) (*Scorer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		opts:     opts,
		th:       opts.thresholds(),
		sim:      opts.backend(),
		simCache: make(map[[2]string]float64),
	}, nil
}

// Confidence blends title, artist and optional album/duration similarity
// into a single score. A shared ISRC short-circuits to 1.0 regardless of
// the metadata signals.
func (s *Scorer) Confidence(a, b *library.Track) float64 {
	if isrcEqual(a.ISRC, b.ISRC) {
		return 1.0
	}

	score := s.titleSimilarity(a.NormalizedTitle, b.NormalizedTitle) * titleWeight
	weight := titleWeight

	score += s.artistSimilarity(a, b) * artistWeight
	weight += artistWeight

	if s.opts.EnableAlbum && a.Album != "" && b.Album != "" {
		score += s.albumSimilarity(a.Album, b.Album) * albumWeight
		weight += albumWeight
	}

	if s.opts.EnableDuration && a.Duration > 0 && b.Duration > 0 {
		score += s.durationSimilarity(a.Duration, b.Duration) * durationWeight
		weight += durationWeight
	}

	return score / weight
}

// titleSimilarity blends token-set, token-sort and partial ratios. Scores
// above a length-dependent soft threshold get a small boost; scores below
// it are kept rather than clamped, so near-misses degrade gracefully.
func (s *Scorer) titleSimilarity(title1, title2 string) float64 {
	if title1 == "" || title2 == "" {
		return 0
	}

	tokenSet := similarity.TokenSetRatio(s.sim, title1, title2)
	tokenSort := similarity.TokenSortRatio(s.sim, title1, title2)
	partial := similarity.PartialRatio(s.sim, title1, title2)
	combined := tokenSet*0.4 + tokenSort*0.4 + partial*0.2

	words := len(strings.Fields(title1))
	if n := len(strings.Fields(title2)); n > words {
		words = n
	}
	threshold := s.th.titleLong
	if words < shortTitleWords {
		threshold = s.th.titleShort
	}

	if combined >= threshold {
		boosted := combined * titleBoostFactor
		if boosted > 1 {
			return 1
		}
		return boosted
	}
	return combined
}

// artistSimilarity uses Jaccard overlap of the artist token sets with a
// flat bonus when one set contains the other ("Adele" vs "Adele feat. X").
// When tokenization yields nothing on either side it falls back to raw
// string similarity of the normalized artists.
func (s *Scorer) artistSimilarity(a, b *library.Track) float64 {
	tokens1, tokens2 := a.ArtistTokens, b.ArtistTokens
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return s.cachedRatio(a.NormalizedArtist, b.NormalizedArtist)
	}

	intersection := 0
	for tok := range tokens1 {
		if _, ok := tokens2[tok]; ok {
			intersection++
		}
	}
	union := len(tokens1) + len(tokens2) - intersection
	jaccard := float64(intersection) / float64(union)

	combined := jaccard
	if intersection == len(tokens1) || intersection == len(tokens2) {
		combined += artistSubsetBonus
	}
	if combined > 1 {
		return 1
	}
	return combined
}

// albumSimilarity rates album names with a token-sort ratio and contributes
// nothing below the acceptance floor.
func (s *Scorer) albumSimilarity(album1, album2 string) float64 {
	r := similarity.TokenSortRatio(s.sim, strings.ToLower(album1), strings.ToLower(album2))
	if r < albumFloor {
		return 0
	}
	return r
}

// durationSimilarity is 1.0 within the absolute tolerance, then decays
// linearly down to 0.6 at the percentage soft limit, and is 0 beyond it.
func (s *Scorer) durationSimilarity(d1, d2 int) float64 {
	diff := d1 - d2
	if diff < 0 {
		diff = -diff
	}
	if diff <= s.th.durationTolerance {
		return 1.0
	}

	longer := d1
	if d2 > longer {
		longer = d2
	}
	frac := float64(diff) / float64(longer)
	if frac <= s.th.durationSoftLimit {
		score := 1.0 - (frac/s.th.durationSoftLimit)*0.4
		if score < 0.6 {
			return 0.6
		}
		return score
	}
	return 0
}

// cachedRatio memoizes backend lookups with an order-independent key.
func (s *Scorer) cachedRatio(str1, str2 string) float64 {
	if str1 == "" || str2 == "" {
		return 0
	}
	if str1 == str2 {
		return 1
	}
	key := [2]string{str1, str2}
	if str2 < str1 {
		key = [2]string{str2, str1}
	}
	if r, ok := s.simCache[key]; ok {
		return r
	}
	r := s.sim.Ratio(str1, str2)
	s.simCache[key] = r
	return r
}

func isrcEqual(isrc1, isrc2 string) bool {
	i1 := strings.ToUpper(strings.TrimSpace(isrc1))
	i2 := strings.ToUpper(strings.TrimSpace(isrc2))
	return i1 != "" && i1 == i2
}
