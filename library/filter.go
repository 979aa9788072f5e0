package library

import (
	"regexp"
	"strings"
)

// Patterns that disqualify an entry as music. Platform exports mix songs
// with podcasts, shorts and other spoken-word uploads; these are matched
// against the combined title+artist text.
var nonMusicRes = []*regexp.Regexp{
	// Podcasts and interviews
	regexp.MustCompile(`\b(podcast|interview|talk|discussion)\b`),
	regexp.MustCompile(`\b(episode|ep\.|chapter)\s*\d+`),
	// Short-form video content
	regexp.MustCompile(`\b(youtube\s+shorts?|shorts?)\b`),
	regexp.MustCompile(`\b(vlog|tutorial|review|reaction)\b`),
	regexp.MustCompile(`\b(behind\s+the\s+scenes|making\s+of)\b`),
	// Non-music audio
	regexp.MustCompile(`\b(audiobook|meditation|sleep|rain|nature)\b`),
	regexp.MustCompile(`\b(comedy|stand-?up|funny)\b`),
	// Raw live recordings
	regexp.MustCompile(`\b(live\s+from|recorded\s+live)\b`),
	regexp.MustCompile(`\b(concert\s+recording|bootleg)\b`),
	regexp.MustCompile(`\b(explicit|nsfw|adult)\b`),
}

var compilationWords = []string{"mix", "compilation", "collection"}

const maxMusicTitleLen = 150

// IsMusicContent reports whether a title/artist pair looks like an actual
// music track. Various-artists compilations that name a mix or collection
// stay classified as music even when a pattern would disqualify them.
func IsMusicContent(title, artist string) bool {
	if title == "" && artist == "" {
		return false
	}

	titleLower := strings.ToLower(title)
	if strings.Contains(strings.ToLower(artist), "various artists") {
		for _, word := range compilationWords {
			if strings.Contains(titleLower, word) {
				return true
			}
		}
	}

	combined := titleLower + " " + strings.ToLower(artist)
	for _, re := range nonMusicRes {
		if re.MatchString(combined) {
			return false
		}
	}

	if len(title) > maxMusicTitleLen {
		return false
	}
	return true
}
