package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperServerConfig configures the whisper-server HTTP backend
type WhisperServerConfig struct {
	BaseURL       string            `yaml:"base_url"`       // e.g. "http://127.0.0.1:8081"
	InferencePath string            `yaml:"inference_path"` // default "/inference"
	Model         string            `yaml:"model"`          // reported model id, default "base"
	Language      string            `yaml:"language"`       // empty lets the server detect
	Temperature   float64           `yaml:"temperature"`
	Timeout       time.Duration     `yaml:"timeout"`
	CustomHeaders map[string]string `yaml:"custom_headers"`
}

// whisperServerResponse is the json response_format of whisper-server
type whisperServerResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// WhisperServer transcribes through a whisper-server instance
type WhisperServer struct {
	config WhisperServerConfig
	client *http.Client
}

// NewWhisperServer creates a whisper-server backend, filling defaults
func NewWhisperServer(config WhisperServerConfig) *WhisperServer {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Model == "" {
		config.Model = "base"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &WhisperServer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Info implements Transcriber
func (ws *WhisperServer) Info() ModelInfo {
	return ModelInfo{Backend: BackendWhisperServer, Model: ws.config.Model}
}

// Transcribe implements Transcriber
func (ws *WhisperServer) Transcribe(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	body, contentType, err := ws.createMultipartForm(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ws.config.BaseURL+ws.config.InferencePath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create whisper request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for key, value := range ws.config.CustomHeaders {
		req.Header.Set(key, value)
	}

	resp, err := ws.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper-server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out whisperServerResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode whisper response: %w", err)
	}

	language := out.Language
	if language == "" {
		language = ws.config.Language
	}

	return &Result{
		Text:           strings.TrimSpace(out.Text),
		Language:       language,
		ProcessingTime: time.Since(start),
	}, nil
}

// createMultipartForm builds the inference request body
func (ws *WhisperServer) createMultipartForm(path string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio content: %w", err)
	}

	params := map[string]string{
		"response_format": "json",
		"temperature":     fmt.Sprintf("%.2f", ws.config.Temperature),
	}
	if ws.config.Language != "" {
		params["language"] = ws.config.Language
	}
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
