package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI transcription backend
type OpenAIConfig struct {
	APIKey   string `yaml:"-"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

// OpenAI transcribes through the OpenAI audio API
type OpenAI struct {
	client   *openai.Client
	model    string
	language string
}

// NewOpenAI creates an OpenAI backend
func NewOpenAI(config OpenAIConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	model := config.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAI{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    model,
		language: config.Language,
	}
}

// Info implements Transcriber
func (o *OpenAI) Info() ModelInfo {
	return ModelInfo{Backend: BackendOpenAI, Model: o.model}
}

// Transcribe implements Transcriber
func (o *OpenAI) Transcribe(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: path,
		Language: o.language,
	})
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	return &Result{
		Text:           strings.TrimSpace(resp.Text),
		Language:       resp.Language,
		ProcessingTime: time.Since(start),
	}, nil
}
