// Package search merges, deduplicates, and reshapes raw catalog records into
// the response schema.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ytmlite/internal/catalog"
	"ytmlite/internal/core"
)

const unknownArtist = "Unknown"

// Searcher is the catalog capability the normalizer consumes.
type Searcher interface {
	Search(ctx context.Context, query string, filter catalog.Filter, limit int) ([]catalog.Record, error)
}

// Thumbnailer resolves a thumbnail URL for a (trackID, kind) pair.
type Thumbnailer interface {
	Resolve(trackID, kind string) string
}

// Normalizer runs catalog queries and normalizes their results.
type Normalizer struct {
	catalog Searcher
	thumbs  Thumbnailer
	logger  *zap.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(cat Searcher, thumbs Thumbnailer, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		catalog: cat,
		thumbs:  thumbs,
		logger:  logger,
	}
}

// Search runs the upstream queries for a mode and returns normalized,
// deduplicated results in merge order. Mode "all" fans out to a song-filtered
// and an unfiltered query concurrently; both must succeed. An empty upstream
// result set is core.ErrNoResults, an upstream failure is
// core.ErrUpstreamUnavailable.
func (n *Normalizer) Search(ctx context.Context, query string, limit int, mode core.SearchMode) ([]core.SearchResult, error) {
	raw, err := n.fetch(ctx, query, limit, mode)
	if err != nil {
		n.logger.Warn("Catalog search failed",
			zap.String("query", query),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}

	if len(raw) == 0 {
		return nil, core.ErrNoResults
	}

	return n.normalize(raw), nil
}

func (n *Normalizer) fetch(ctx context.Context, query string, limit int, mode core.SearchMode) ([]catalog.Record, error) {
	switch mode {
	case core.ModeSong:
		return n.catalog.Search(ctx, query, catalog.FilterSongs, limit)
	case core.ModeVideo:
		return n.catalog.Search(ctx, query, catalog.FilterVideos, limit)
	}

	// Mode "all": both queries run to completion, either failure fails the
	// whole search. Songs come first in merge order so a song record wins
	// the dedup over its video duplicate.
	var songs, mixed []catalog.Record
	var g errgroup.Group

	g.Go(func() error {
		var err error
		songs, err = n.catalog.Search(ctx, query, catalog.FilterSongs, limit)
		return err
	})
	g.Go(func() error {
		var err error
		mixed, err = n.catalog.Search(ctx, query, catalog.FilterNone, limit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(songs, mixed...), nil
}

func (n *Normalizer) normalize(raw []catalog.Record) []core.SearchResult {
	results := make([]core.SearchResult, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, rec := range raw {
		if rec.VideoID == "" {
			continue
		}
		if _, dup := seen[rec.VideoID]; dup {
			continue
		}
		seen[rec.VideoID] = struct{}{}

		kind := rec.ResultType
		if kind == "" {
			kind = "video"
		}

		title := rec.Title
		if title == "" {
			title = "No title"
		}

		results = append(results, core.SearchResult{
			Title:     title,
			Artist:    joinArtists(rec),
			Thumbnail: n.thumbs.Resolve(rec.VideoID, kind),
			TrackID:   rec.VideoID,
			Kind:      kind,
		})
	}

	return results
}

// joinArtists comma-joins the record's artist names, falling back to the
// channel list and then to "Unknown". A present but nameless entry still
// contributes "Unknown" to the list.
func joinArtists(rec catalog.Record) string {
	people := rec.Artists
	if len(people) == 0 {
		people = rec.Channel
	}

	names := make([]string, 0, len(people))
	for _, p := range people {
		name := p.Name
		if name == "" {
			name = unknownArtist
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return unknownArtist
	}
	return strings.Join(names, ", ")
}
