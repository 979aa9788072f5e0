package similarity

import (
	"sort"
	"strings"
)

// TokenSortRatio compares the two strings with their words sorted, so word
// order differences ("Beatles The" vs "The Beatles") do not lower the score.
func TokenSortRatio(b Backend, s1, s2 string) float64 {
	return b.Ratio(sortWords(s1), sortWords(s2))
}

// TokenSetRatio compares the sorted intersection of words against each
// side's full sorted word set and returns the best pairing. Extra words on
// one side ("remastered 2009") cost far less than with a plain ratio.
func TokenSetRatio(b Backend, s1, s2 string) float64 {
	set1 := wordSet(s1)
	set2 := wordSet(s2)

	var common, diff1, diff2 []string
	for w := range set1 {
		if _, ok := set2[w]; ok {
			common = append(common, w)
		} else {
			diff1 = append(diff1, w)
		}
	}
	for w := range set2 {
		if _, ok := set1[w]; !ok {
			diff2 = append(diff2, w)
		}
	}
	sort.Strings(common)
	sort.Strings(diff1)
	sort.Strings(diff2)

	base := strings.Join(common, " ")
	combined1 := strings.TrimSpace(base + " " + strings.Join(diff1, " "))
	combined2 := strings.TrimSpace(base + " " + strings.Join(diff2, " "))

	best := b.Ratio(base, combined1)
	if r := b.Ratio(base, combined2); r > best {
		best = r
	}
	if r := b.Ratio(combined1, combined2); r > best {
		best = r
	}
	return best
}

// PartialRatio slides the shorter string across the longer and returns the
// best window score, so a title embedded in a longer one still rates high.
func PartialRatio(b Backend, s1, s2 string) float64 {
	shorter, longer := []rune(s1), []rune(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}
	if len(shorter) == len(longer) {
		return b.Ratio(string(shorter), string(longer))
	}

	var best float64
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := b.Ratio(string(shorter), string(longer[i:i+len(shorter)]))
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return best
}

func sortWords(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
