// Package app wires configuration into the long-lived service objects.
package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"emotion-audio/internal/app/analysis"
	"emotion-audio/internal/app/emotion"
	"emotion-audio/internal/app/transcribe"
	"emotion-audio/internal/app/upload"
	"emotion-audio/internal/config"
	"emotion-audio/internal/metrics"
)

// App holds everything the HTTP server and the CLI share
type App struct {
	Service   *analysis.Service
	Validator *upload.Validator
	Store     *upload.Store
	Metrics   metrics.Recorder
	Registry  *prometheus.Registry
	Logger    *zap.Logger
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideStore(cfg *config.Config) *upload.Store {
	return upload.NewStore(cfg.Upload.TempDir)
}

func provideValidator(cfg *config.Config) *upload.Validator {
	return upload.NewValidator(cfg.Upload.AllowedExtensions(), cfg.Upload.MaxFileSize())
}

func provideRecorder(reg *prometheus.Registry, store *upload.Store) metrics.Recorder {
	return metrics.NewPrometheus(reg, func() float64 { return float64(store.InFlight()) })
}

func provideTranscriber(cfg *config.Config) (transcribe.Transcriber, error) {
	return transcribe.New(cfg.Transcriber)
}

// provideClassifier builds the Hugging Face classifier, decorated with the
// Redis cache when one is configured and reachable
func provideClassifier(cfg *config.Config, logger *zap.Logger) (emotion.Classifier, func(), error) {
	var classifier emotion.Classifier = emotion.NewHuggingFace(cfg.Classifier)
	if !cfg.Cache.Enabled() {
		return classifier, func() {}, nil
	}

	cache, err := emotion.NewRedisCache(cfg.Cache.RedisURL, cfg.Cache.Prefix)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis cache unavailable, classifying without cache", zap.Error(err))
		cache.Close()
		return classifier, func() {}, nil
	}

	logger.Info("Classification cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	cleanup := func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return emotion.NewCachedClassifier(classifier, cache, cfg.Cache.TTL, logger), cleanup, nil
}
