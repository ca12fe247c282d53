// Package analysis sequences transcription and emotion classification for a
// stored audio file.
package analysis

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"emotion-audio/internal/app/emotion"
	apperrors "emotion-audio/internal/app/errors"
	"emotion-audio/internal/app/transcribe"
	"emotion-audio/internal/metrics"
)

// NoSpeechWarning is returned when the transcript is empty
const NoSpeechWarning = "No speech detected in the audio"

// Analysis is the combined result for one audio file
type Analysis struct {
	Transcription string         `json:"transcription"`
	Emotion       emotion.Result `json:"emotion"`
	Warning       string         `json:"warning,omitempty"`
}

// Models reports the identifiers of the loaded models
type Models struct {
	Whisper           string `json:"whisper"`
	EmotionClassifier string `json:"emotion_classifier"`
}

// Service runs the analysis pipeline. The adapters are created once at
// startup and shared by all requests.
type Service struct {
	transcriber transcribe.Transcriber
	classifier  emotion.Classifier
	metrics     metrics.Recorder
	logger      *zap.Logger
}

// NewService creates a pipeline over the given adapters
func NewService(transcriber transcribe.Transcriber, classifier emotion.Classifier, recorder metrics.Recorder, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transcriber: transcriber,
		classifier:  classifier,
		metrics:     recorder,
		logger:      logger,
	}
}

// Models returns the model identifiers reported by /health
func (s *Service) Models() Models {
	return Models{
		Whisper:           s.transcriber.Info().Model,
		EmotionClassifier: s.classifier.Info().Model,
	}
}

// Analyze transcribes the audio at path and classifies the transcript.
// An empty transcript skips classification and yields the neutral result.
// Adapter failures are returned marked with apperrors.ErrProcessing.
func (s *Service) Analyze(ctx context.Context, path string) (*Analysis, error) {
	s.logger.Info("Transcribing audio...", zap.String("path", path))

	start := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, path)
	if err != nil {
		s.metrics.RecordFailure(metrics.StageTranscribe, errorType(ctx, err))
		return nil, apperrors.Processing(err)
	}
	s.metrics.RecordSuccess(metrics.StageTranscribe, time.Since(start))

	text := strings.TrimSpace(transcript.Text)
	if text == "" {
		s.logger.Warn("No speech detected in audio")
		return &Analysis{
			Transcription: "",
			Emotion:       emotion.Neutral,
			Warning:       NoSpeechWarning,
		}, nil
	}

	s.logger.Info("Analyzing emotion...", zap.Int("transcript_length", len(text)))

	start = time.Now()
	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.metrics.RecordFailure(metrics.StageClassify, errorType(ctx, err))
		return nil, apperrors.Processing(err)
	}
	s.metrics.RecordSuccess(metrics.StageClassify, time.Since(start))

	return &Analysis{
		Transcription: text,
		Emotion:       *result,
	}, nil
}

func errorType(ctx context.Context, err error) string {
	switch {
	case ctx.Err() == context.Canceled:
		return "canceled"
	case ctx.Err() == context.DeadlineExceeded:
		return "timeout"
	case apperrors.Is(err, apperrors.ErrEmptyResponse):
		return "empty_response"
	default:
		return "model_error"
	}
}
