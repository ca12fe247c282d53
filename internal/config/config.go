// Package config assembles the service configuration from defaults, an
// optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"emotion-audio/internal/app/emotion"
	apperrors "emotion-audio/internal/app/errors"
	"emotion-audio/internal/app/transcribe"
	"emotion-audio/internal/app/upload"
)

// Config is the complete service configuration
type Config struct {
	Server      ServerConfig              `yaml:"server"`
	Upload      UploadConfig              `yaml:"upload"`
	Transcriber transcribe.Config         `yaml:"transcriber"`
	Classifier  emotion.HuggingFaceConfig `yaml:"classifier"`
	Cache       CacheConfig               `yaml:"cache"`
	Log         LogConfig                 `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Environment     string        `yaml:"environment" validate:"oneof=development production test"`
}

// UploadConfig holds where uploads are staged. The size limit and the
// allowed extensions are fixed.
type UploadConfig struct {
	TempDir string `yaml:"temp_dir"`
}

// MaxFileSize returns the upload size limit
func (UploadConfig) MaxFileSize() int64 {
	return upload.DefaultMaxFileSize
}

// AllowedExtensions returns the accepted audio extensions
func (UploadConfig) AllowedExtensions() []string {
	return upload.DefaultAllowedExtensions
}

// CacheConfig configures the optional Redis classification cache
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url" validate:"omitempty,url"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Enabled reports whether a Redis URL is configured
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

var validate = validator.New()

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and the backend specific requirements
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	checks := []error{
		ValidatePort(c.Server.Port, "server"),
		ValidateTimeout(c.Server.ReadTimeout, "server read"),
		ValidateTimeout(c.Server.WriteTimeout, "server write"),
		ValidateTimeout(c.Server.IdleTimeout, "server idle"),
		ValidateTimeout(c.Classifier.Timeout, "classifier"),
	}

	switch c.Transcriber.Backend {
	case transcribe.BackendWhisperServer:
		checks = append(checks,
			ValidateURL(c.Transcriber.WhisperServer.BaseURL, "whisper_server"),
			ValidateTimeout(c.Transcriber.WhisperServer.Timeout, "whisper_server"),
		)
	case transcribe.BackendOpenAI:
		checks = append(checks, ValidateAPIKey(c.Transcriber.OpenAI.APIKey, "OpenAI"))
	}

	if c.Classifier.Endpoint != "" {
		checks = append(checks, ValidateURL(c.Classifier.Endpoint, "classifier"))
	} else {
		checks = append(checks, ValidateURL(c.Classifier.BaseURL, "classifier"))
	}

	for _, err := range checks {
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
		}
	}
	return nil
}
