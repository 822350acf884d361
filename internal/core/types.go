package core

import (
	"regexp"
)

// SearchMode selects which upstream catalog queries a search fans out to.
type SearchMode string

const (
	// ModeSong searches the catalog's song index only
	ModeSong SearchMode = "song"
	// ModeVideo searches the catalog's video index only
	ModeVideo SearchMode = "video"
	// ModeAll runs a song-filtered and an unfiltered query concurrently
	ModeAll SearchMode = "all"
)

// ParseSearchMode maps a request parameter to a SearchMode.
func ParseSearchMode(s string) (SearchMode, bool) {
	switch SearchMode(s) {
	case ModeSong, ModeVideo, ModeAll:
		return SearchMode(s), true
	case "":
		return ModeAll, true
	}
	return "", false
}

// SearchResult is one normalized entry of a search response. Identity is
// TrackID; within one response TrackIDs are unique.
type SearchResult struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	TrackID   string `json:"videoId"`
	Kind      string `json:"type"`
}

// TrackDetails is the assembled payload for a single track: catalog metadata
// plus a resolved playable audio URL.
type TrackDetails struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	AudioURL  string `json:"audioUrl"`
}

var trackIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ValidTrackID reports whether id is an 11-character URL-safe catalog
// identifier. Invalid ids are rejected at the HTTP boundary and never reach
// the resolvers.
func ValidTrackID(id string) bool {
	return trackIDPattern.MatchString(id)
}
