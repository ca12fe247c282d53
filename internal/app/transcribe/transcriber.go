// Package transcribe turns audio files into text through an external
// speech-recognition model.
package transcribe

import (
	"context"
	"time"
)

// Backend names accepted in configuration
const (
	BackendWhisperServer = "whisper_server"
	BackendOpenAI        = "openai"
)

// ModelInfo identifies the model behind a transcriber
type ModelInfo struct {
	Backend string `json:"backend"`
	Model   string `json:"model"`
}

// Result is the output of a transcription. Text is trimmed and may be empty
// when the audio contains no speech.
type Result struct {
	Text           string        `json:"text"`
	Language       string        `json:"language,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
}

// Transcriber converts the audio file at path into text.
// Implementations must be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*Result, error)
	Info() ModelInfo
}
