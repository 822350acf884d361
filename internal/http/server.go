// Package http serves the façade's HTTP surface.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ytmlite/internal/core"
)

// SearchService is the search pipeline the server fronts.
type SearchService interface {
	Search(ctx context.Context, query string, limit int, mode core.SearchMode) ([]core.SearchResult, error)
}

// TrackService is the track-details pipeline the server fronts.
type TrackService interface {
	TrackDetails(ctx context.Context, trackID string) (*core.TrackDetails, error)
}

type Server struct {
	config  *core.Config
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
	search  SearchService
	tracks  TrackService
}

type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	TrackRequestsTotal *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	AudioCacheSize     prometheus.Gauge

	registry *prometheus.Registry
}

func newMetrics() *Metrics {
	metrics := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytmlite_searches_total",
				Help: "Total number of search requests",
			},
			[]string{"mode", "status"},
		),
		TrackRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytmlite_track_requests_total",
				Help: "Total number of track detail requests",
			},
			[]string{"status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ytmlite_request_duration_seconds",
				Help:    "Time spent handling requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		AudioCacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ytmlite_audio_cache_entries",
				Help: "Current number of cached audio URLs",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	metrics.registry.MustRegister(
		metrics.SearchesTotal,
		metrics.TrackRequestsTotal,
		metrics.RequestDuration,
		metrics.AudioCacheSize,
	)

	return metrics
}

// NewServer wires the routes and metrics around the two pipelines.
func NewServer(config *core.Config, search SearchService, tracks TrackService, logger *zap.Logger) *Server {
	s := &Server{
		config:  config,
		logger:  logger,
		metrics: newMetrics(),
		search:  search,
		tracks:  tracks,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      s.routes(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.config.CORS.AllowedOrigins))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/favicon.ico", s.handleFavicon)
	r.Get("/search", s.handleSearch)
	r.Get("/track/{trackID}", s.handleTrack)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// SetAudioCacheSize updates the audio cache gauge.
func (s *Server) SetAudioCacheSize(size int) {
	s.metrics.AudioCacheSize.Set(float64(size))
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}

// corsMiddleware reflects the origin back for allowlisted origins and
// answers preflight requests.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
