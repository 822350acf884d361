package track

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"ytmlite/internal/catalog"
	"ytmlite/internal/core"
)

type fakeAudio struct {
	url string
	err error
}

func (f *fakeAudio) ResolveAudio(_ context.Context, _ string) (string, error) {
	return f.url, f.err
}

type fakeMetadata struct {
	meta *catalog.SongMetadata
	err  error
}

func (f *fakeMetadata) GetSong(_ context.Context, _ string) (*catalog.SongMetadata, error) {
	return f.meta, f.err
}

func TestTrackDetails_MergesBothFetches(t *testing.T) {
	a := NewAssembler(
		&fakeAudio{url: "https://stream/140"},
		&fakeMetadata{meta: &catalog.SongMetadata{
			Title:     "T1",
			Artist:    "X",
			Thumbnail: "http://img/large.jpg",
		}},
		zap.NewNop(),
	)

	details, err := a.TrackDetails(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("TrackDetails() error: %v", err)
	}

	expected := core.TrackDetails{
		Title:     "T1",
		Artist:    "X",
		Thumbnail: "http://img/large.jpg",
		AudioURL:  "https://stream/140",
	}
	if *details != expected {
		t.Errorf("TrackDetails() = %+v, expected %+v", *details, expected)
	}
}

func TestTrackDetails_AudioFailureKeepsClassification(t *testing.T) {
	audioErr := fmt.Errorf("%w: no audio stream", core.ErrAudioExtraction)
	a := NewAssembler(
		&fakeAudio{err: audioErr},
		&fakeMetadata{meta: &catalog.SongMetadata{Title: "T1"}},
		zap.NewNop(),
	)

	_, err := a.TrackDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, core.ErrAudioExtraction) {
		t.Errorf("TrackDetails() error = %v, expected ErrAudioExtraction", err)
	}
	if errors.Is(err, core.ErrMetadataUnavailable) {
		t.Error("audio failure must not classify as metadata failure")
	}
}

func TestTrackDetails_TimeoutPropagates(t *testing.T) {
	a := NewAssembler(
		&fakeAudio{err: fmt.Errorf("%w: context deadline exceeded", core.ErrAudioTimeout)},
		&fakeMetadata{meta: &catalog.SongMetadata{}},
		zap.NewNop(),
	)

	_, err := a.TrackDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, core.ErrAudioTimeout) {
		t.Errorf("TrackDetails() error = %v, expected ErrAudioTimeout", err)
	}
}

func TestTrackDetails_MetadataFailure(t *testing.T) {
	a := NewAssembler(
		&fakeAudio{url: "https://stream/140"},
		&fakeMetadata{err: errors.New("connection refused")},
		zap.NewNop(),
	)

	_, err := a.TrackDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, core.ErrMetadataUnavailable) {
		t.Errorf("TrackDetails() error = %v, expected ErrMetadataUnavailable", err)
	}
}

func TestTrackDetails_AudioErrorWinsWhenBothFail(t *testing.T) {
	a := NewAssembler(
		&fakeAudio{err: fmt.Errorf("%w: boom", core.ErrAudioTimeout)},
		&fakeMetadata{err: errors.New("also down")},
		zap.NewNop(),
	)

	_, err := a.TrackDetails(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, core.ErrAudioTimeout) {
		t.Errorf("TrackDetails() error = %v, expected audio classification to win", err)
	}
}
