package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ytmlite/internal/core"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type searchResponse struct {
	Results []core.SearchResult `json:"results"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ytmlite is up and running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.RequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	}()

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = v
	}

	mode, ok := core.ParseSearchMode(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "type must be song, video, or all")
		return
	}

	results, err := s.search.Search(r.Context(), query, limit, mode)
	if err != nil {
		status, message := classify(err)
		s.metrics.SearchesTotal.WithLabelValues(string(mode), strconv.Itoa(status)).Inc()
		if status == http.StatusInternalServerError {
			s.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		}
		writeError(w, status, message)
		return
	}

	s.metrics.SearchesTotal.WithLabelValues(string(mode), strconv.Itoa(http.StatusOK)).Inc()
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.RequestDuration.WithLabelValues("track").Observe(time.Since(start).Seconds())
	}()

	trackID := chi.URLParam(r, "trackID")
	if !core.ValidTrackID(trackID) {
		s.metrics.TrackRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
		writeError(w, http.StatusBadRequest, core.ErrInvalidTrackID.Error())
		return
	}

	details, err := s.tracks.TrackDetails(r.Context(), trackID)
	if err != nil {
		status, message := classify(err)
		s.metrics.TrackRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		if status == http.StatusInternalServerError {
			s.logger.Error("Track details failed", zap.String("track_id", trackID), zap.Error(err))
		}
		writeError(w, status, message)
		return
	}

	s.metrics.TrackRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	writeJSON(w, http.StatusOK, details)
}

// classify maps a pipeline failure to its response status and user-visible
// message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNoResults):
		return http.StatusNotFound, "No results"
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "Upstream unavailable"
	case errors.Is(err, core.ErrAudioTimeout):
		return http.StatusGatewayTimeout, "Audio timeout"
	case errors.Is(err, core.ErrAudioExtraction):
		return http.StatusServiceUnavailable, "Audio extraction failed"
	case errors.Is(err, core.ErrMetadataUnavailable):
		return http.StatusServiceUnavailable, "Metadata unavailable"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
