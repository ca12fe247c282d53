// Package emotion classifies the emotional tone of a transcript.
package emotion

import "context"

// Neutral is the policy result used when there is no speech to classify
var Neutral = Result{Label: "neutral", Score: 1.0}

// DefaultModel is the text-classification model used unless configured otherwise
const DefaultModel = "nateraw/bert-base-uncased-emotion"

// DefaultLabels is the label set of DefaultModel
var DefaultLabels = []string{"sadness", "joy", "love", "anger", "fear", "surprise"}

// Result is the single most likely emotion for a text
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ModelInfo identifies the model behind a classifier
type ModelInfo struct {
	Backend string   `json:"backend"`
	Model   string   `json:"model"`
	Labels  []string `json:"labels,omitempty"`
}

// Classifier assigns an emotion to non-empty text.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Result, error)
	Info() ModelInfo
}
