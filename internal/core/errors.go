package core

import (
	"errors"
)

// Failure taxonomy. Components wrap these with fmt.Errorf("...: %w", ...) and
// the HTTP layer classifies with errors.Is to pick a status code.
var (
	// ErrUpstreamUnavailable means a catalog search query failed (502).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNoResults means the filtered upstream result set was empty (404).
	ErrNoResults = errors.New("no results")
	// ErrAudioTimeout means stream resolution exceeded its deadline (504).
	ErrAudioTimeout = errors.New("audio timeout")
	// ErrAudioExtraction means stream resolution failed for any other
	// reason, including a track with no audio-only stream (503).
	ErrAudioExtraction = errors.New("audio extraction failed")
	// ErrMetadataUnavailable means the catalog metadata fetch failed (503).
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrInvalidTrackID means the identifier failed boundary validation (400).
	ErrInvalidTrackID = errors.New("invalid track id")
)
