package core

import (
	"time"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Stream  StreamConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StreamConfig struct {
	CacheTTL       time.Duration
	CacheSize      int
	ResolveTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL: "http://127.0.0.1:8008",
			Timeout: 10 * time.Second,
		},
		Stream: StreamConfig{
			CacheTTL:       300 * time.Second,
			CacheSize:      1000,
			ResolveTimeout: 8 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"https://www.mrlucky.cloud",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
