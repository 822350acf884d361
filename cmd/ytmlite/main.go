// Package main provides the ytmlite CLI application entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"ytmlite/internal/catalog"
	"ytmlite/internal/core"
	httpserver "ytmlite/internal/http"
	"ytmlite/internal/search"
	"ytmlite/internal/stream"
	"ytmlite/internal/thumb"
	"ytmlite/internal/track"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ytmlite",
	Short: "ytmlite - YouTube Music search and audio URL façade",
	Long: `ytmlite is a small HTTP façade for searching music tracks and fetching a
playable audio URL plus metadata per track, backed by a music catalog
provider and a media-stream provider.`,
	RunE: runServer,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("server-host", "0.0.0.0", "HTTP listen host")
	rootCmd.PersistentFlags().Int("server-port", 8000, "HTTP listen port")
	rootCmd.PersistentFlags().String("catalog-base-url", "", "catalog provider base URL")
	rootCmd.PersistentFlags().Int("audio-ttl", 300, "audio URL cache TTL in seconds")
	rootCmd.PersistentFlags().Int("audio-cache-size", 1000, "audio URL cache capacity")
	rootCmd.PersistentFlags().Int("audio-timeout", 8, "stream resolution timeout in seconds")
	rootCmd.PersistentFlags().String("cors-allowed-origins", "", "comma-separated CORS origin allowlist")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
	}

	viper.SetEnvPrefix("YTMLITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// The original deployment configures the cache TTL through a bare
	// AUDIO_TTL variable, keep honoring it.
	_ = viper.BindEnv("audio-ttl", "YTMLITE_AUDIO_TTL", "AUDIO_TTL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	config = buildConfig()
	logger = buildLogger(config.Log.Level)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	if host := viper.GetString("server-host"); host != "" {
		cfg.Server.Host = host
	}
	if port := viper.GetInt("server-port"); port != 0 {
		cfg.Server.Port = port
	}

	if baseURL := viper.GetString("catalog-base-url"); baseURL != "" {
		cfg.Catalog.BaseURL = strings.TrimRight(baseURL, "/")
	}

	if ttl := viper.GetInt("audio-ttl"); ttl > 0 {
		cfg.Stream.CacheTTL = time.Duration(ttl) * time.Second
	}
	if size := viper.GetInt("audio-cache-size"); size > 0 {
		cfg.Stream.CacheSize = size
	}
	if timeout := viper.GetInt("audio-timeout"); timeout > 0 {
		cfg.Stream.ResolveTimeout = time.Duration(timeout) * time.Second
	}

	if origins := viper.GetString("cors-allowed-origins"); origins != "" {
		cfg.CORS.AllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
	}

	cfg.Log.Level = viper.GetString("log-level")

	return cfg
}

func buildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting ytmlite",
		zap.String("catalog_base_url", config.Catalog.BaseURL),
		zap.Duration("audio_ttl", config.Stream.CacheTTL))

	thumbs := thumb.NewResolver(thumb.DefaultCacheSize)

	catalogClient := catalog.NewClient(&config.Catalog, logger.Named("catalog"))
	normalizer := search.NewNormalizer(catalogClient, thumbs, logger.Named("search"))

	resolver := stream.NewResolver(&youtube.Client{}, &config.Stream, logger.Named("stream"))
	assembler := track.NewAssembler(resolver, catalogClient, logger.Named("track"))

	server := httpserver.NewServer(config, normalizer, assembler, logger.Named("http"))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				server.SetAudioCacheSize(resolver.CacheLen())
			}
		}
	})

	logger.Info("ytmlite started successfully",
		zap.String("http_addr", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("ytmlite stopped with error", zap.Error(err))
		return err
	}

	logger.Info("ytmlite stopped gracefully")
	return nil
}
