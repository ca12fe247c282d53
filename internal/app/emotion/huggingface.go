package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	apperrors "emotion-audio/internal/app/errors"
)

// BackendHuggingFace is the configuration name of the Hugging Face backend
const BackendHuggingFace = "huggingface"

// HuggingFaceConfig configures a Hugging Face style text-classification endpoint
type HuggingFaceConfig struct {
	BaseURL  string        `yaml:"base_url"` // default "https://api-inference.huggingface.co"
	Endpoint string        `yaml:"endpoint"` // full URL, overrides BaseURL + "/models/" + Model
	Model    string        `yaml:"model"`
	Token    string        `yaml:"-"`
	Labels   []string      `yaml:"labels"`
	Timeout  time.Duration `yaml:"timeout"`
}

type classificationRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HuggingFace classifies text through an inference endpoint
type HuggingFace struct {
	config HuggingFaceConfig
	client *http.Client
}

// NewHuggingFace creates a classifier, filling defaults
func NewHuggingFace(config HuggingFaceConfig) *HuggingFace {
	if config.BaseURL == "" {
		config.BaseURL = "https://api-inference.huggingface.co"
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if len(config.Labels) == 0 && config.Model == DefaultModel {
		config.Labels = DefaultLabels
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Endpoint == "" {
		config.Endpoint = strings.TrimRight(config.BaseURL, "/") + "/models/" + config.Model
	}

	return &HuggingFace{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Info implements Classifier
func (h *HuggingFace) Info() ModelInfo {
	return ModelInfo{
		Backend: BackendHuggingFace,
		Model:   h.config.Model,
		Labels:  append([]string(nil), h.config.Labels...),
	}
}

// Classify implements Classifier
func (h *HuggingFace) Classify(ctx context.Context, text string) (*Result, error) {
	payload, err := json.Marshal(classificationRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("classifier encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.config.Token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("classifier read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	scores, err := decodeScores(body)
	if err != nil {
		return nil, err
	}
	return h.pickTop(scores)
}

// decodeScores accepts both the pipeline shape [[{label,score}]] and a flat list
func decodeScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		return lo.Flatten(nested), nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("classifier decode: %w", err)
	}
	return flat, nil
}

func (h *HuggingFace) pickTop(scores []labelScore) (*Result, error) {
	if len(scores) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrEmptyResponse, "classifier returned no labels")
	}

	top := lo.MaxBy(scores, func(a, b labelScore) bool { return a.Score > b.Score })
	if top.Score < 0 || top.Score > 1 {
		return nil, fmt.Errorf("classifier score %v out of range for label %q", top.Score, top.Label)
	}

	label := strings.ToLower(top.Label)
	if len(h.config.Labels) > 0 && !lo.Contains(h.config.Labels, label) {
		return nil, fmt.Errorf("classifier returned unknown label %q", top.Label)
	}

	return &Result{Label: label, Score: top.Score}, nil
}
