package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables recognised by Load
const (
	EnvPort            = "EMOTION_AUDIO_PORT"
	EnvHost            = "EMOTION_AUDIO_HOST"
	EnvEnvironment     = "EMOTION_AUDIO_ENV"
	EnvTempDir         = "EMOTION_AUDIO_TEMP_DIR"
	EnvTranscriber     = "EMOTION_AUDIO_TRANSCRIBER"
	EnvWhisperURL      = "EMOTION_AUDIO_WHISPER_URL"
	EnvClassifierURL   = "EMOTION_AUDIO_CLASSIFIER_URL"
	EnvClassifierToken = "EMOTION_AUDIO_CLASSIFIER_TOKEN"
	EnvRedisURL        = "EMOTION_AUDIO_REDIS_URL"
	EnvLogLevel        = "EMOTION_AUDIO_LOG_LEVEL"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvOpenAIBaseURL   = "OPENAI_BASE_URL"
)

// envPaths are searched in order; the first existing file wins
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found and
// returns its path. A missing file is not an error since variables may be
// set system-wide. Variables already present in the environment are kept.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// applyEnv overlays environment variables onto cfg
func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, EnvPort)
	setString(&cfg.Server.Host, EnvHost)
	setString(&cfg.Server.Environment, EnvEnvironment)
	setString(&cfg.Upload.TempDir, EnvTempDir)
	setString(&cfg.Transcriber.Backend, EnvTranscriber)
	setString(&cfg.Transcriber.WhisperServer.BaseURL, EnvWhisperURL)
	setString(&cfg.Transcriber.OpenAI.APIKey, EnvOpenAIKey)
	setString(&cfg.Transcriber.OpenAI.BaseURL, EnvOpenAIBaseURL)
	setString(&cfg.Classifier.Endpoint, EnvClassifierURL)
	setString(&cfg.Classifier.Token, EnvClassifierToken)
	setString(&cfg.Cache.RedisURL, EnvRedisURL)
	setString(&cfg.Log.Level, EnvLogLevel)
}

// setString replaces *dst with the trimmed value of key when it is set
func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}
