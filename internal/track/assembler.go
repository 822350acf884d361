// Package track assembles the per-track response from the stream resolver
// and the catalog metadata fetch.
package track

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ytmlite/internal/catalog"
	"ytmlite/internal/core"
)

// AudioResolver resolves a track id to a playable audio URL.
type AudioResolver interface {
	ResolveAudio(ctx context.Context, trackID string) (string, error)
}

// MetadataFetcher fetches catalog metadata for a track id.
type MetadataFetcher interface {
	GetSong(ctx context.Context, trackID string) (*catalog.SongMetadata, error)
}

// Assembler orchestrates the two independent upstream fetches for a track.
type Assembler struct {
	audio    AudioResolver
	metadata MetadataFetcher
	logger   *zap.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(audio AudioResolver, metadata MetadataFetcher, logger *zap.Logger) *Assembler {
	return &Assembler{
		audio:    audio,
		metadata: metadata,
		logger:   logger,
	}
}

// TrackDetails fetches the audio URL and the catalog metadata concurrently
// and merges them. Both fetches run to completion; an audio failure keeps
// its own classification and takes precedence, a metadata failure classifies
// as core.ErrMetadataUnavailable. The audio URL is the only cached
// sub-result, metadata is fetched fresh on every call.
func (a *Assembler) TrackDetails(ctx context.Context, trackID string) (*core.TrackDetails, error) {
	var (
		audioURL string
		meta     *catalog.SongMetadata
		audioErr error
		metaErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		audioURL, audioErr = a.audio.ResolveAudio(ctx, trackID)
		return nil
	})
	g.Go(func() error {
		meta, metaErr = a.metadata.GetSong(ctx, trackID)
		return nil
	})
	_ = g.Wait()

	if audioErr != nil {
		return nil, audioErr
	}
	if metaErr != nil {
		a.logger.Warn("Metadata fetch failed",
			zap.String("track_id", trackID),
			zap.Error(metaErr))
		return nil, fmt.Errorf("%w: %w", core.ErrMetadataUnavailable, metaErr)
	}

	return &core.TrackDetails{
		Title:     meta.Title,
		Artist:    meta.Artist,
		Thumbnail: meta.Thumbnail,
		AudioURL:  audioURL,
	}, nil
}
