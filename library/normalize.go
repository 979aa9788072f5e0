package library

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuationRe   = regexp.MustCompile(`[^\w\s]`)
	multipleSpaceRe = regexp.MustCompile(`\s+`)

	// Parenthesized version markers are extracted and re-appended so that
	// "Song (Live)" and "Song (Remastered)" keep their version signal but
	// lose ordering/formatting noise.
	versionRes = []*regexp.Regexp{
		regexp.MustCompile(`\([^)]*remix[^)]*\)`),
		regexp.MustCompile(`\([^)]*version[^)]*\)`),
		regexp.MustCompile(`\([^)]*remaster[^)]*\)`),
		regexp.MustCompile(`\([^)]*live[^)]*\)`),
		regexp.MustCompile(`\([^)]*acoustic[^)]*\)`),
		regexp.MustCompile(`\([^)]*instrumental[^)]*\)`),
		regexp.MustCompile(`\([^)]*deluxe[^)]*\)`),
		regexp.MustCompile(`\([^)]*extended[^)]*\)`),
	}

	parenRe   = regexp.MustCompile(`\([^)]*\)`)
	bracketRe = regexp.MustCompile(`\[[^\]]*\]`)

	leadingTheRe  = regexp.MustCompile(`^the\s+`)
	trailingTheRe = regexp.MustCompile(`\s+the$`)

	featuringRes = []*regexp.Regexp{
		regexp.MustCompile(`\s*\(\s*feat\.?\s+[^)]*\)`),
		regexp.MustCompile(`\s*\(\s*ft\.?\s+[^)]*\)`),
		regexp.MustCompile(`\s*\(\s*with\s+[^)]*\)`),
		regexp.MustCompile(`\s*\(\s*&\s+[^)]*\)`),
		regexp.MustCompile(`\s+feat\.?\s+.*`),
		regexp.MustCompile(`\s+ft\.?\s+.*`),
	}

	generationRe = regexp.MustCompile(`\s+(jr\.?|sr\.?|iii?|iv)$`)

	// Version tokens removed entirely by StripVersionTokens. Year-qualified
	// remaster tags are handled in both orders ("2009 Remaster" and
	// "Remastered 2009") so cross-platform remaster notation collapses to
	// the same base title.
	versionTokenRe = regexp.MustCompile(
		`\b(?:\d{2,4}\s+remaster(?:ed)?|remaster(?:ed)?(?:\s+\d{2,4})?|remix|version|live|acoustic|instrumental|deluxe|extended|radio\s+edit|edit|demo|mono|stereo|explicit|clean)\b`)
)

// collectiveArtists are placeholder names that never identify a single
// contributing artist.
var collectiveArtists = map[string]bool{
	"various artists": true,
	"va":              true,
	"ost":             true,
	"soundtrack":      true,
}

// foldDiacritics maps accented characters to their ASCII base so "Tiësto"
// and "Tiesto" produce the same comparison key.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeTitle produces the comparison key for a track title:
// lower-cased, diacritics folded, version markers in parentheses preserved
// at the end, other parenthesized/bracketed content dropped, leading or
// trailing "the" removed, punctuation replaced with spaces and whitespace
// collapsed.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(title))
	s = foldDiacritics(s)
	s = multipleSpaceRe.ReplaceAllString(s, " ")

	var versions []string
	for _, re := range versionRes {
		versions = append(versions, re.FindAllString(s, -1)...)
		s = re.ReplaceAllString(s, "")
	}

	s = parenRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")

	if len(versions) > 0 {
		s += " " + strings.Join(versions, " ")
	}

	s = leadingTheRe.ReplaceAllString(s, "")
	s = trailingTheRe.ReplaceAllString(s, "")

	s = punctuationRe.ReplaceAllString(s, " ")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeArtist produces the comparison key for an artist string:
// lower-cased, diacritics folded, featuring clauses and generational
// suffixes removed, whitespace collapsed. Punctuation is kept so that
// multi-artist separators survive for ArtistTokens.
func NormalizeArtist(artist string) string {
	if artist == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(artist))
	s = foldDiacritics(s)

	for _, re := range featuringRes {
		s = re.ReplaceAllString(s, "")
	}

	s = generationRe.ReplaceAllString(s, "")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ArtistTokens splits an artist string into the set of individual
// contributing-artist names. Fragments of one character and collective
// placeholders ("various artists", "va", "ost", "soundtrack") are dropped.
func ArtistTokens(artist string) map[string]struct{} {
	tokens := map[string]struct{}{}
	normalized := NormalizeArtist(artist)
	if normalized == "" {
		return tokens
	}

	parts := []string{normalized}
	for _, sep := range []string{",", "&", " and ", " with ", " feat ", " ft ", " featuring "} {
		var next []string
		for _, part := range parts {
			for _, piece := range strings.Split(part, sep) {
				next = append(next, strings.TrimSpace(piece))
			}
		}
		parts = next
	}

	for _, part := range parts {
		if len(part) > 1 && !collectiveArtists[part] {
			tokens[part] = struct{}{}
		}
	}
	return tokens
}

// StripVersionTokens removes version/remaster/live markers from an
// already-normalized title, yielding the base title used by the
// version-insensitive matching tier.
func StripVersionTokens(normalizedTitle string) string {
	if normalizedTitle == "" {
		return ""
	}
	s := versionTokenRe.ReplaceAllString(normalizedTitle, " ")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
