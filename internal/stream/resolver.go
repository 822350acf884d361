// Package stream resolves playable audio URLs through the media-stream
// provider, with a deadline and a short-lived cache.
package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	youtube "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"ytmlite/internal/core"
)

const watchURLFormat = "https://music.youtube.com/watch?v=%s"

// audioContainer is the fixed container format audio streams are selected
// from.
const audioContainer = "audio/mp4"

// Provider lists a track's streams and signs stream URLs. *youtube.Client
// satisfies it.
type Provider interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamURLContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (string, error)
}

// Resolver resolves track ids to audio stream URLs. Results are cached with
// a TTL; a hit never returns an expired entry. Concurrent misses for the
// same id may both do upstream work, last write wins.
type Resolver struct {
	provider Provider
	cache    *expirable.LRU[string, string]
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a Resolver with the configured cache bounds and
// upstream deadline.
func NewResolver(provider Provider, config *core.StreamConfig, logger *zap.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    expirable.NewLRU[string, string](config.CacheSize, nil, config.CacheTTL),
		timeout:  config.ResolveTimeout,
		logger:   logger,
	}
}

// ResolveAudio returns the URL of the highest-bitrate audio-only stream for
// a track. The upstream call is bounded by the configured deadline; a
// deadline overrun classifies as core.ErrAudioTimeout, anything else as
// core.ErrAudioExtraction.
func (r *Resolver) ResolveAudio(ctx context.Context, trackID string) (string, error) {
	if url, ok := r.cache.Get(trackID); ok {
		r.logger.Debug("Audio cache hit", zap.String("track_id", trackID))
		return url, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	video, err := r.provider.GetVideoContext(ctx, fmt.Sprintf(watchURLFormat, trackID))
	if err != nil {
		return "", r.classify(trackID, err)
	}

	format := bestAudioFormat(video.Formats)
	if format == nil {
		r.logger.Warn("No audio stream", zap.String("track_id", trackID))
		return "", fmt.Errorf("%w: no audio stream", core.ErrAudioExtraction)
	}

	url, err := r.provider.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return "", r.classify(trackID, err)
	}

	r.cache.Add(trackID, url)
	return url, nil
}

// CacheLen returns the number of live cache entries.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}

func (r *Resolver) classify(trackID string, err error) error {
	r.logger.Warn("Audio resolution failed",
		zap.String("track_id", trackID),
		zap.Error(err))

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", core.ErrAudioTimeout, err)
	}
	return fmt.Errorf("%w: %w", core.ErrAudioExtraction, err)
}

// bestAudioFormat picks the highest-bitrate audio-only stream in the fixed
// container format, or nil when the track has none.
func bestAudioFormat(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, audioContainer) {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}
