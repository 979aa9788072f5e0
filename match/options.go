// Package match compares music libraries: it scores pairwise track
// similarity, indexes a target library for fast candidate lookup and
// resolves each source track through a tiered matching policy.
package match

import (
	"fmt"

	"github.com/rvallat/crossfade/similarity"
)

// Progress is invoked after each processed source track and once on
// completion. It must return quickly and must not panic; it is always
// called from the goroutine running the comparison.
type Progress func(processed, total int, message string)

// Options configures the scorer and comparator. The zero value is lenient
// mode with duration and album signals disabled.
type Options struct {
	// Strict tightens every threshold and tolerance, trading recall for
	// precision.
	Strict bool

	// EnableDuration adds the duration signal to the confidence blend when
	// both tracks carry a duration.
	EnableDuration bool

	// EnableAlbum adds the album signal to the confidence blend when both
	// tracks carry an album.
	EnableAlbum bool

	// DurationTolerance overrides the mode default (7s strict, 9s lenient)
	// for the absolute duration tolerance. Zero keeps the default.
	DurationTolerance int

	// Progress receives per-track progress updates during Compare.
	Progress Progress

	// Similarity selects the string-similarity backend. Nil uses
	// similarity.Default().
	Similarity similarity.Backend
}

// DefaultOptions is strict matching with the duration signal on, matching
// the recommended cross-platform configuration.
func DefaultOptions() Options {
	return Options{Strict: true, EnableDuration: true}
}

// Validate rejects configurations that would otherwise surface as
// surprising scores mid-pass.
func (o Options) Validate() error {
	if o.DurationTolerance < 0 {
		return fmt.Errorf("match: duration tolerance must not be negative, got %d", o.DurationTolerance)
	}
	return nil
}

// thresholds holds every mode-dependent tunable in one place.
type thresholds struct {
	titleShort        float64 // soft threshold for titles under 3 words
	titleLong         float64 // soft threshold for longer titles
	durationTolerance int     // seconds of absolute slack
	durationSoftLimit float64 // fraction of track length for graded decay
	versionFloor      float64 // acceptance floor for the version-insensitive tier
	fuzzyFloor        float64 // acceptance floor for the open fuzzy tier
}

func (o Options) thresholds() thresholds {
	th := thresholds{
		titleShort:        0.92,
		titleLong:         0.85,
		durationTolerance: 9,
		durationSoftLimit: 0.12,
		versionFloor:      0.75,
		fuzzyFloor:        0.72,
	}
	if o.Strict {
		th = thresholds{
			titleShort:        0.96,
			titleLong:         0.92,
			durationTolerance: 7,
			durationSoftLimit: 0.08,
			versionFloor:      0.82,
			fuzzyFloor:        0.80,
		}
	}
	if o.DurationTolerance > 0 {
		th.durationTolerance = o.DurationTolerance
	}
	return th
}

func (o Options) backend() similarity.Backend {
	if o.Similarity != nil {
		return o.Similarity
	}
	return similarity.Default()
}
