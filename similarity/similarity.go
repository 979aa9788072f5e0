// Package similarity provides interchangeable string-similarity backends
// and the fuzzy ratio composites built on top of them. Callers pick a
// backend once at construction; the matching and deduplication packages
// never branch on the backend themselves.
package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
)

// Backend computes a similarity ratio in [0,1] between two strings.
// Implementations must be symmetric and safe for concurrent use.
type Backend interface {
	Ratio(a, b string) float64
}

// Default returns the backend used when a caller does not choose one.
func Default() Backend {
	return Levenshtein{}
}

// Levenshtein scores by edit distance normalized over the longer string.
type Levenshtein struct{}

func (Levenshtein) Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longer := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longer {
		longer = n
	}
	return 1 - float64(dist)/float64(longer)
}

// JaroWinkler scores with the Jaro-Winkler metric, which favors matching
// prefixes. Well suited to title/artist pairs that diverge at the tail
// (version tags, featured artists).
type JaroWinkler struct{}

func (JaroWinkler) Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return float64(sim)
}

// LCS is a dependency-free fallback scoring by longest-common-subsequence
// length over the longer string.
type LCS struct{}

func (LCS) Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return float64(lcsLength(ra, rb)) / float64(longer)
}

func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return prev[len(b)]
}
