package config

import (
	"time"

	"emotion-audio/internal/app/emotion"
	"emotion-audio/internal/app/transcribe"
)

// Default configuration constants
const (
	// Server defaults
	DefaultHost            = "0.0.0.0"
	DefaultPort            = "8000"
	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = 180 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultEnvironment     = "development"

	// Model backend defaults
	DefaultWhisperURL        = "http://127.0.0.1:8081"
	DefaultWhisperModel      = "base"
	DefaultWhisperTimeout    = 120 * time.Second
	DefaultClassifierURL     = "https://api-inference.huggingface.co"
	DefaultClassifierTimeout = 30 * time.Second

	// Cache defaults
	DefaultCachePrefix = "emotion:"
	DefaultCacheTTL    = 24 * time.Hour

	DefaultLogLevel = "info"
)

// Default returns the configuration used when no file or environment overrides are present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			Environment:     DefaultEnvironment,
		},
		Transcriber: transcribe.Config{
			Backend: transcribe.BackendWhisperServer,
			WhisperServer: transcribe.WhisperServerConfig{
				BaseURL: DefaultWhisperURL,
				Model:   DefaultWhisperModel,
				Timeout: DefaultWhisperTimeout,
			},
		},
		Classifier: emotion.HuggingFaceConfig{
			BaseURL: DefaultClassifierURL,
			Model:   emotion.DefaultModel,
			Timeout: DefaultClassifierTimeout,
		},
		Cache: CacheConfig{
			Prefix: DefaultCachePrefix,
			TTL:    DefaultCacheTTL,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
