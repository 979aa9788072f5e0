package match

import (
	"testing"

	"github.com/rvallat/crossfade/library"
)

func testLibrary(name string, tracks ...library.Track) *library.Library {
	lib := library.NewLibrary(name, "test")
	lib.AddTracks(tracks...)
	return lib
}

func TestIndexByISRC(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "Yesterday", Artist: "The Beatles", ISRC: "GBAYE0601477"},
		library.Track{Title: "Hey Jude", Artist: "The Beatles", ISRC: "GBAYE0601611"},
	)
	ix := NewIndex(lib)

	if ix.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", ix.Size())
	}

	got, ok := ix.ByISRC("gbaye0601477")
	if !ok || got.Title != "Yesterday" {
		t.Errorf("case-insensitive lookup failed: %v, %v", got, ok)
	}
	if _, ok := ix.ByISRC("  GBAYE0601611  "); !ok {
		t.Error("whitespace-insensitive lookup failed")
	}
	if _, ok := ix.ByISRC("ZZZZZ9999999"); ok {
		t.Error("unknown identifier should not resolve")
	}
	if _, ok := ix.ByISRC(""); ok {
		t.Error("empty identifier should not resolve")
	}
}

func TestIndexISRCCollisions(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "First Upload", Artist: "Artist", ISRC: "USUM71703861"},
		library.Track{Title: "Second Upload", Artist: "Artist", ISRC: "USUM71703861"},
	)
	ix := NewIndex(lib)

	if ix.ISRCCollisions() != 1 {
		t.Errorf("ISRCCollisions() = %d, want 1", ix.ISRCCollisions())
	}
	// Last write wins.
	got, ok := ix.ByISRC("USUM71703861")
	if !ok || got.Title != "Second Upload" {
		t.Errorf("collision should keep latest entry, got %v", got)
	}
}

func TestIndexExactBucket(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "Yesterday", Artist: "The Beatles"},
		library.Track{Title: "YESTERDAY!", Artist: "the beatles"},
		library.Track{Title: "Hey Jude", Artist: "The Beatles"},
	)
	ix := NewIndex(lib)

	query := buildTrack(library.Track{Title: "yesterday", Artist: "The Beatles"})
	bucket := ix.ExactBucket(query)
	if len(bucket) != 2 {
		t.Fatalf("expected bucket of 2 normalized-equal tracks, got %d", len(bucket))
	}

	noArtist := buildTrack(library.Track{Title: "Yesterday"})
	if got := ix.ExactBucket(noArtist); got != nil {
		t.Errorf("track without artist must not hit the exact index, got %v", got)
	}
}

func TestIndexBaseBucket(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "Yesterday - Remastered 2009", Artist: "The Beatles"},
		library.Track{Title: "Yesterday (Live)", Artist: "The Beatles"},
		library.Track{Title: "Yesterday", Artist: "Boyz II Men"},
	)
	ix := NewIndex(lib)

	bucket := ix.BaseBucket("yesterday", "the beatles")
	if len(bucket) != 2 {
		t.Fatalf("expected 2 version variants, got %d", len(bucket))
	}
	if got := ix.BaseBucket("yesterday", "boyz ii men"); len(got) != 1 {
		t.Errorf("artist must partition base buckets, got %d", len(got))
	}
}

func TestIndexCandidates(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "Bohemian Rhapsody", Artist: "Queen"},
		library.Track{Title: "Another One Bites the Dust", Artist: "Queen"},
		library.Track{Title: "Take Five", Artist: "Dave Brubeck"},
	)
	ix := NewIndex(lib)

	// Title word overlap pulls in the match; artist word overlap pulls
	// in the rest of the same artist's catalog.
	query := buildTrack(library.Track{Title: "Bohemian Rhapsody", Artist: "Queen"})
	candidates := ix.Candidates(query)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates via word postings, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.NormalizedArtist != "queen" {
			t.Errorf("unexpected candidate %q by %q", c.Title, c.Artist)
		}
	}
}

func TestIndexCandidatesFallback(t *testing.T) {
	lib := testLibrary("target",
		library.Track{Title: "Bohemian Rhapsody", Artist: "Queen"},
		library.Track{Title: "Take Five", Artist: "Dave Brubeck"},
	)
	ix := NewIndex(lib)

	// Words shorter than the posting minimum produce no hits; the bounded
	// prefix keeps the fuzzy tier from going blind.
	query := buildTrack(library.Track{Title: "Xy", Artist: "Zq"})
	candidates := ix.Candidates(query)
	if len(candidates) != 2 {
		t.Errorf("expected bounded-prefix fallback of 2, got %d", len(candidates))
	}
}
