// Package thumb guesses thumbnail URLs for catalog tracks without probing
// the image host.
package thumb

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const baseURL = "https://img.youtube.com/vi"

// DefaultCacheSize bounds the memo table; entries are immutable strings so
// eviction order is not significant.
const DefaultCacheSize = 2000

var (
	songTiers  = []string{"maxresdefault", "hqdefault", "mqdefault", "default"}
	otherTiers = []string{"hqdefault", "mqdefault", "default"}
)

type memoKey struct {
	trackID string
	kind    string
}

// Resolver maps (trackID, kind) to a best-guess thumbnail URL. It is
// deterministic and performs no I/O; results are memoized. The chosen
// quality tier is not verified to exist upstream, the terminal "default"
// tier always does.
type Resolver struct {
	memo *lru.Cache[memoKey, string]
}

// NewResolver creates a Resolver with a memo table of the given capacity.
func NewResolver(cacheSize int) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	memo, _ := lru.New[memoKey, string](cacheSize)
	return &Resolver{memo: memo}
}

// Resolve returns the thumbnail URL for a track. Songs prefer the highest
// quality tier; anything else starts one tier lower.
func (r *Resolver) Resolve(trackID, kind string) string {
	key := memoKey{trackID: trackID, kind: kind}
	if url, ok := r.memo.Get(key); ok {
		return url
	}

	tiers := otherTiers
	if kind == "song" {
		tiers = songTiers
	}

	url := fmt.Sprintf("%s/%s/%s.jpg", baseURL, trackID, tiers[0])
	r.memo.Add(key, url)
	return url
}

// Len returns the number of memoized entries.
func (r *Resolver) Len() int {
	return r.memo.Len()
}
