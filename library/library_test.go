package library

import (
	"strings"
	"testing"
)

func TestLibraryAddTrack(t *testing.T) {
	lib := NewLibrary("My Export", "spotify")
	lib.AddTrack(Track{Title: "Yesterday", Artist: "The Beatles", Duration: 125})

	tracks := lib.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	got := tracks[0]
	if got.Platform != "spotify" {
		t.Errorf("Platform = %q, want %q", got.Platform, "spotify")
	}
	if got.NormalizedTitle != "yesterday" {
		t.Errorf("NormalizedTitle = %q, want %q", got.NormalizedTitle, "yesterday")
	}
	if got.NormalizedArtist != "the beatles" {
		t.Errorf("NormalizedArtist = %q, want %q", got.NormalizedArtist, "the beatles")
	}
	if !got.IsMusic {
		t.Error("expected track to be classified as music")
	}
}

func TestLibraryMusicFiltering(t *testing.T) {
	lib := NewLibrary("Mixed", "youtube")
	lib.AddTracks(
		Track{Title: "Bohemian Rhapsody", Artist: "Queen"},
		Track{Title: "The Daily Podcast", Artist: "NYT"},
		Track{Title: "Guitar Tutorial", Artist: "Lesson Channel"},
		Track{Title: "Hey Jude", Artist: "The Beatles"},
	)

	if got := lib.TotalTracks(); got != 4 {
		t.Errorf("TotalTracks() = %d, want 4", got)
	}
	if got := lib.MusicCount(); got != 2 {
		t.Errorf("MusicCount() = %d, want 2", got)
	}
	if got := lib.NonMusicCount(); got != 2 {
		t.Errorf("NonMusicCount() = %d, want 2", got)
	}
}

func TestLibraryCacheInvalidation(t *testing.T) {
	lib := NewLibrary("Growing", "tidal")
	lib.AddTrack(Track{Title: "One", Artist: "Artist A"})

	if got := lib.MusicCount(); got != 1 {
		t.Fatalf("MusicCount() = %d, want 1", got)
	}

	// Adding after a cached read must refresh the filtered view.
	lib.AddTrack(Track{Title: "Two", Artist: "Artist B"})
	if got := lib.MusicCount(); got != 2 {
		t.Errorf("MusicCount() after second add = %d, want 2", got)
	}
	if got := len(lib.ArtistCounts()); got != 2 {
		t.Errorf("len(ArtistCounts()) = %d, want 2", got)
	}
}

func TestLibraryTopArtists(t *testing.T) {
	lib := NewLibrary("Counts", "spotify")
	lib.AddTracks(
		Track{Title: "Song 1", Artist: "Queen"},
		Track{Title: "Song 2", Artist: "Queen"},
		Track{Title: "Song 3", Artist: "Queen"},
		Track{Title: "Song 4", Artist: "ABBA"},
		Track{Title: "Song 5", Artist: "ABBA"},
		Track{Title: "Song 6", Artist: "Zappa"},
	)

	top := lib.TopArtists(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Artist != "queen" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want queen/3", top[0])
	}
	if top[1].Artist != "abba" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want abba/2", top[1])
	}
}

func TestLibraryTopArtistsTieBreak(t *testing.T) {
	lib := NewLibrary("Ties", "spotify")
	lib.AddTracks(
		Track{Title: "Song 1", Artist: "Zeta"},
		Track{Title: "Song 2", Artist: "Alpha"},
	)

	top := lib.TopArtists(10)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Artist != "alpha" {
		t.Errorf("ties should break alphabetically, got %q first", top[0].Artist)
	}
}

func TestLibraryStats(t *testing.T) {
	lib := NewLibrary("Export", "deezer")
	lib.AddTracks(
		Track{Title: "Song 1", Artist: "Queen"},
		Track{Title: "Song 2", Artist: "ABBA"},
		Track{Title: "Morning Podcast", Artist: "Host"},
	)

	stats := lib.Stats()
	if stats.Name != "Export" || stats.Platform != "deezer" {
		t.Errorf("unexpected identity: %+v", stats)
	}
	if stats.TotalTracks != 3 || stats.MusicTracks != 2 || stats.NonMusicTracks != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.UniqueArtists != 2 {
		t.Errorf("UniqueArtists = %d, want 2", stats.UniqueArtists)
	}

	summary := stats.Summary()
	for _, want := range []string{"Export", "deezer", "3 tracks", "2 music"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
}
