package thumb

import (
	"fmt"
	"strings"
	"testing"
)

func TestResolve_SongTier(t *testing.T) {
	r := NewResolver(10)

	url := r.Resolve("dQw4w9WgXcQ", "song")
	expected := "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"
	if url != expected {
		t.Errorf("Resolve(song) = %q, expected %q", url, expected)
	}
}

func TestResolve_OtherKindsStartLower(t *testing.T) {
	for _, kind := range []string{"video", "album", "", "playlist"} {
		url := NewResolver(10).Resolve("dQw4w9WgXcQ", kind)
		expected := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
		if url != expected {
			t.Errorf("Resolve(%q) = %q, expected %q", kind, url, expected)
		}
	}
}

func TestResolve_QualityTagInTierList(t *testing.T) {
	r := NewResolver(10)

	cases := []struct {
		kind  string
		tiers []string
	}{
		{"song", []string{"maxresdefault", "hqdefault", "mqdefault", "default"}},
		{"video", []string{"hqdefault", "mqdefault", "default"}},
	}

	for _, tc := range cases {
		url := r.Resolve("AAAAAAAAAAA", tc.kind)
		if url == "" {
			t.Fatalf("Resolve(%q) returned empty URL", tc.kind)
		}

		found := false
		for _, tier := range tc.tiers {
			if strings.HasSuffix(url, "/"+tier+".jpg") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Resolve(%q) = %q, quality tag not in tier list %v", tc.kind, url, tc.tiers)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(10)

	first := r.Resolve("AAAAAAAAAAA", "song")
	second := r.Resolve("AAAAAAAAAAA", "song")
	if first != second {
		t.Errorf("Resolve not deterministic: %q then %q", first, second)
	}

	if r.Len() != 1 {
		t.Errorf("memo size = %d after repeated lookups, expected 1", r.Len())
	}
}

func TestResolve_KindIsPartOfMemoKey(t *testing.T) {
	r := NewResolver(10)

	song := r.Resolve("AAAAAAAAAAA", "song")
	video := r.Resolve("AAAAAAAAAAA", "video")
	if song == video {
		t.Errorf("song and video thumbnails should differ, both %q", song)
	}

	if r.Len() != 2 {
		t.Errorf("memo size = %d, expected 2 distinct keys", r.Len())
	}
}

func TestResolve_CapacityBound(t *testing.T) {
	r := NewResolver(5)

	for i := 0; i < 20; i++ {
		r.Resolve(fmt.Sprintf("id%08d_-t", i)[:11], "song")
	}

	if r.Len() > 5 {
		t.Errorf("memo size = %d exceeds capacity 5", r.Len())
	}

	// Evicted entries still resolve to the same URL.
	url := r.Resolve("id00000000_", "song")
	if !strings.Contains(url, "id00000000_") {
		t.Errorf("re-resolved URL %q missing track id", url)
	}
}
