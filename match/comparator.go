package match

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/rvallat/crossfade/library"
)

// Displayed confidence floor for exact-normalized matches. The bucket key
// already guarantees identical normalized title and artist, so the scorer
// is only consulted to break ties between bucket members.
const exactConfidenceFloor = 0.95

var ErrNilLibrary = errors.New("match: library must not be nil")

// Comparator resolves every music track of a source library against a
// target library through ordered tiers: identifier, exact-normalized,
// version-insensitive, open fuzzy. The first tier that accepts wins; a
// source track no tier accepts is recorded as missing.
//
// A Comparator never mutates its inputs. Each Compare call builds its own
// index and its own scorer cache, so independent calls on one Comparator
// may run concurrently as long as the progress callback tolerates it.
type Comparator struct {
	opts Options
}

func New(opts Options) (*Comparator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Comparator{opts: opts}, nil
}

// Compare runs one source→target pass and returns the aggregated result.
// The optional progress callback fires after each source track and once on
// completion.
func (c *Comparator) Compare(source, target *library.Library) (*ComparisonResult, error) {
	if source == nil || target == nil {
		return nil, ErrNilLibrary
	}

	scorer, err := NewScorer(c.opts)
	if err != nil {
		return nil, err
	}
	ix := NewIndex(target)
	sourceMusic := source.MusicTracks()
	total := len(sourceMusic)

	var matches []Result
	var missing []*library.Track

	for i, st := range sourceMusic {
		c.progress(i, total, "Matching: "+st.Title)

		if m, ok := c.findMatch(scorer, st, ix); ok {
			matches = append(matches, m)
		} else {
			missing = append(missing, st)
		}
	}

	c.progress(total, total, fmt.Sprintf("Matched %s of %s tracks",
		humanize.Comma(int64(len(matches))), humanize.Comma(int64(total))))

	return newComparisonResult(source, target, matches, missing), nil
}

func (c *Comparator) progress(processed, total int, message string) {
	if c.opts.Progress != nil {
		c.opts.Progress(processed, total, message)
	}
}

// findMatch walks the resolution tiers in order; the first acceptance wins.
func (c *Comparator) findMatch(scorer *Scorer, st *library.Track, ix *Index) (Result, bool) {
	th := c.opts.thresholds()

	// Tier 1: identifier. Accepted unconditionally.
	if st.ISRC != "" {
		if target, ok := ix.ByISRC(st.ISRC); ok {
			return Result{Source: st, Target: target, Confidence: 1.0, Type: TypeISRC}, true
		}
	}

	// Tier 2: exact-normalized bucket. Ties inside the bucket are broken
	// by score; displayed confidence never drops below the exact floor.
	if bucket := ix.ExactBucket(st); len(bucket) > 0 {
		best := bucket[0]
		bestConfidence := exactConfidenceFloor
		if len(bucket) > 1 {
			for _, candidate := range bucket {
				if conf := scorer.Confidence(st, candidate); conf > bestConfidence {
					best = candidate
					bestConfidence = conf
				}
			}
		}
		return Result{Source: st, Target: best, Confidence: bestConfidence, Type: TypeExact}, true
	}

	// Tier 3: version-insensitive. Same base title and artist, scored, with
	// its own acceptance floor.
	baseTitle := library.StripVersionTokens(st.NormalizedTitle)
	if bucket := ix.BaseBucket(baseTitle, st.NormalizedArtist); len(bucket) > 0 {
		var best *library.Track
		var bestConfidence float64
		for _, candidate := range bucket {
			if conf := scorer.Confidence(st, candidate); conf > bestConfidence {
				best = candidate
				bestConfidence = conf
			}
		}
		if best != nil && bestConfidence >= th.versionFloor {
			return Result{Source: st, Target: best, Confidence: bestConfidence, Type: TypeFuzzy}, true
		}
	}

	// Tier 4: open fuzzy over the pre-filtered candidate set.
	var best *library.Track
	var bestConfidence float64
	for _, candidate := range ix.Candidates(st) {
		conf := scorer.Confidence(st, candidate)
		if conf > bestConfidence {
			best = candidate
			bestConfidence = conf
			if conf >= earlyStopThreshold {
				break
			}
		}
	}
	if best != nil && bestConfidence >= th.fuzzyFloor {
		return Result{Source: st, Target: best, Confidence: bestConfidence, Type: TypeFuzzy}, true
	}

	return Result{}, false
}
