package similarity

import (
	"math"
	"testing"
)

func backends() map[string]Backend {
	return map[string]Backend{
		"levenshtein": Levenshtein{},
		"jarowinkler": JaroWinkler{},
		"lcs":         LCS{},
	}
}

func TestBackendsCommonContract(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			if got := b.Ratio("yesterday", "yesterday"); got != 1 {
				t.Errorf("identical strings: got %v, want 1", got)
			}
			if got := b.Ratio("", "yesterday"); got != 0 {
				t.Errorf("empty left: got %v, want 0", got)
			}
			if got := b.Ratio("yesterday", ""); got != 0 {
				t.Errorf("empty right: got %v, want 0", got)
			}

			pairs := [][2]string{
				{"yesterday", "yesterdays"},
				{"the beatles", "beatles"},
				{"abc", "xyz"},
			}
			for _, p := range pairs {
				ab := b.Ratio(p[0], p[1])
				ba := b.Ratio(p[1], p[0])
				if math.Abs(ab-ba) > 1e-9 {
					t.Errorf("Ratio(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
				}
				if ab < 0 || ab > 1 {
					t.Errorf("Ratio(%q, %q) = %v out of [0,1]", p[0], p[1], ab)
				}
			}
		})
	}
}

func TestLevenshteinRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"kitten", "sitting", 1 - 3.0/7.0},
		{"yesterday", "yesterdays", 0.9},
		{"abc", "abd", 1 - 1.0/3.0},
	}
	for _, tt := range tests {
		got := Levenshtein{}.Ratio(tt.a, tt.b)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestJaroWinklerFavorsPrefixes(t *testing.T) {
	jw := JaroWinkler{}
	withTag := jw.Ratio("yesterday", "yesterday remastered")
	unrelated := jw.Ratio("yesterday", "bohemian rhapsody")
	if withTag <= unrelated {
		t.Errorf("expected suffix noise (%v) to score above unrelated (%v)", withTag, unrelated)
	}
	if withTag < 0.8 {
		t.Errorf("shared-prefix pair scored %v, expected at least 0.8", withTag)
	}
}

func TestLCSRatio(t *testing.T) {
	got := LCS{}.Ratio("abc", "axc")
	if math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Ratio(abc, axc) = %v, want 2/3", got)
	}
	if got := (LCS{}).Ratio("abcd", "zzzz"); got != 0 {
		t.Errorf("disjoint strings: got %v, want 0", got)
	}
}

func TestDefaultBackend(t *testing.T) {
	if _, ok := Default().(Levenshtein); !ok {
		t.Errorf("Default() = %T, want Levenshtein", Default())
	}
}
