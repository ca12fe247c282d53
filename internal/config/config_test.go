package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotion-audio/internal/app/emotion"
	apperrors "emotion-audio/internal/app/errors"
	"emotion-audio/internal/app/testutil"
	"emotion-audio/internal/app/transcribe"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, transcribe.BackendWhisperServer, cfg.Transcriber.Backend)
	assert.Equal(t, "base", cfg.Transcriber.WhisperServer.Model)
	assert.Equal(t, emotion.DefaultModel, cfg.Classifier.Model)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize())
	assert.Equal(t, []string{".wav", ".mp3", ".m4a", ".ogg"}, cfg.Upload.AllowedExtensions())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := testutil.WriteFile(t, "config.yaml", []byte(`
server:
  port: "7000"
  read_timeout: 5s
  environment: production
transcriber:
  whisper_server:
    base_url: http://gpu-box:8081
    language: en
classifier:
  endpoint: http://classifier:8080/predict
cache:
  ttl: 1h
log:
  level: debug
`))
	t.Setenv(EnvPort, "7100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "http://gpu-box:8081", cfg.Transcriber.WhisperServer.BaseURL)
	assert.Equal(t, "en", cfg.Transcriber.WhisperServer.Language)
	assert.Equal(t, "http://classifier:8080/predict", cfg.Classifier.Endpoint)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		yaml          string
		env           map[string]string
		errorContains string
	}{
		{
			name:          "bad port",
			env:           map[string]string{EnvPort: "http"},
			errorContains: "Port",
		},
		{
			name:          "port out of range",
			env:           map[string]string{EnvPort: "70000"},
			errorContains: "server port invalid",
		},
		{
			name:          "unknown backend",
			env:           map[string]string{EnvTranscriber: "vosk"},
			errorContains: "Backend",
		},
		{
			name:          "openai without key",
			env:           map[string]string{EnvTranscriber: "openai"},
			errorContains: "OpenAI API key is required",
		},
		{
			name:          "whisper url scheme",
			env:           map[string]string{EnvWhisperURL: "gpu-box:8081"},
			errorContains: "whisper_server URL must start with http:// or https://",
		},
		{
			name:          "bad log level",
			yaml:          "log:\n  level: loud\n",
			errorContains: "Level",
		},
		{
			name:          "zero timeout",
			yaml:          "classifier:\n  timeout: 0s\n",
			errorContains: "classifier timeout must be positive",
		},
		{
			name:          "malformed yaml",
			yaml:          "server: [",
			errorContains: "failed to parse config file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.yaml != "" {
				path = testutil.WriteFile(t, "config.yaml", []byte(tc.yaml))
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
			if tc.name != "malformed yaml" {
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfig))
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateTimeout(time.Second, "x"))
	assert.EqualError(t, ValidateTimeout(time.Hour, "x"), "x timeout too large (max 30 minutes)")
	assert.NoError(t, ValidatePort("8000", "server"))
	assert.Error(t, ValidatePort("0", "server"))
	assert.EqualError(t, ValidatePort("", "server"), "server port is required")
	assert.NoError(t, ValidateURL("https://api-inference.huggingface.co", "classifier"))
	assert.EqualError(t, ValidateAPIKey("invalid-key", "OpenAI"), "invalid OpenAI API key format: must start with 'sk-'")
	assert.EqualError(t, ValidateAPIKey("sk-short", "OpenAI"), "invalid OpenAI API key format: too short")
}
