package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"emotion-audio/internal/app/emotion"
	"emotion-audio/internal/app/transcribe"
)

// MockTranscriber is a mock implementation of transcribe.Transcriber
type MockTranscriber struct {
	mock.Mock
	ModelInfo transcribe.ModelInfo
}

// NewMockTranscriber creates a mock reporting the whisper "base" model
func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{
		ModelInfo: transcribe.ModelInfo{Backend: "mock", Model: "base"},
	}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, path string) (*transcribe.Result, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transcribe.Result), args.Error(1)
}

func (m *MockTranscriber) Info() transcribe.ModelInfo {
	return m.ModelInfo
}

// MockClassifier is a mock implementation of emotion.Classifier
type MockClassifier struct {
	mock.Mock
	ModelInfo emotion.ModelInfo
}

// NewMockClassifier creates a mock reporting the default emotion model
func NewMockClassifier(t *testing.T) *MockClassifier {
	m := &MockClassifier{
		ModelInfo: emotion.ModelInfo{Backend: "mock", Model: emotion.DefaultModel, Labels: emotion.DefaultLabels},
	}
	m.Test(t)
	return m
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (*emotion.Result, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*emotion.Result), args.Error(1)
}

func (m *MockClassifier) Info() emotion.ModelInfo {
	return m.ModelInfo
}
