package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emotion-audio/internal/app/emotion"
	apperrors "emotion-audio/internal/app/errors"
	"emotion-audio/internal/app/testutil"
	"emotion-audio/internal/app/transcribe"
)

type recordedFailure struct{ stage, errorType string }

type fakeRecorder struct {
	successes []string
	failures  []recordedFailure
}

func (f *fakeRecorder) RecordSuccess(stage string, _ time.Duration) {
	f.successes = append(f.successes, stage)
}

func (f *fakeRecorder) RecordFailure(stage, errorType string) {
	f.failures = append(f.failures, recordedFailure{stage, errorType})
}

func (f *fakeRecorder) RecordOutcome(string) {}

func TestService_Analyze(t *testing.T) {
	tests := []struct {
		name           string
		transcript     *transcribe.Result
		transcribeErr  error
		classify       *emotion.Result
		classifyErr    error
		expectClassify bool
		validate       func(*testing.T, *Analysis, error, *fakeRecorder)
	}{
		{
			name:           "speech detected",
			transcript:     &transcribe.Result{Text: "  I cannot believe you did this!  "},
			classify:       &emotion.Result{Label: "anger", Score: 0.93},
			expectClassify: true,
			validate: func(t *testing.T, a *Analysis, err error, rec *fakeRecorder) {
				require.NoError(t, err)
				assert.Equal(t, "I cannot believe you did this!", a.Transcription)
				assert.Equal(t, emotion.Result{Label: "anger", Score: 0.93}, a.Emotion)
				assert.Empty(t, a.Warning)
				assert.Equal(t, []string{"transcribe", "classify"}, rec.successes)
			},
		},
		{
			name:       "empty transcript",
			transcript: &transcribe.Result{Text: ""},
			validate: func(t *testing.T, a *Analysis, err error, rec *fakeRecorder) {
				require.NoError(t, err)
				assert.Equal(t, "", a.Transcription)
				assert.Equal(t, emotion.Result{Label: "neutral", Score: 1.0}, a.Emotion)
				assert.Equal(t, NoSpeechWarning, a.Warning)
				assert.Equal(t, []string{"transcribe"}, rec.successes)
			},
		},
		{
			name:       "whitespace transcript",
			transcript: &transcribe.Result{Text: " \n\t "},
			validate: func(t *testing.T, a *Analysis, err error, rec *fakeRecorder) {
				require.NoError(t, err)
				assert.Equal(t, emotion.Neutral, a.Emotion)
				assert.Equal(t, "No speech detected in the audio", a.Warning)
			},
		},
		{
			name:          "transcription failure",
			transcribeErr: errors.New("whisper-server returned status 500"),
			validate: func(t *testing.T, a *Analysis, err error, rec *fakeRecorder) {
				require.Error(t, err)
				assert.Nil(t, a)
				assert.ErrorIs(t, err, apperrors.ErrProcessing)
				assert.Equal(t, "whisper-server returned status 500", err.Error())
				assert.Equal(t, []recordedFailure{{"transcribe", "model_error"}}, rec.failures)
			},
		},
		{
			name:           "classification failure",
			transcript:     &transcribe.Result{Text: "hello"},
			classifyErr:    apperrors.Wrap(apperrors.ErrEmptyResponse, "classifier returned no labels"),
			expectClassify: true,
			validate: func(t *testing.T, a *Analysis, err error, rec *fakeRecorder) {
				require.Error(t, err)
				assert.Nil(t, a)
				assert.ErrorIs(t, err, apperrors.ErrProcessing)
				assert.ErrorIs(t, err, apperrors.ErrEmptyResponse)
				assert.Equal(t, []recordedFailure{{"classify", "empty_response"}}, rec.failures)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber := testutil.NewMockTranscriber(t)
			classifier := testutil.NewMockClassifier(t)
			rec := &fakeRecorder{}

			transcriber.On("Transcribe", mock.Anything, "/tmp/audio.wav").
				Return(tt.transcript, tt.transcribeErr).Once()
			if tt.expectClassify {
				classifier.On("Classify", mock.Anything, mock.AnythingOfType("string")).
					Return(tt.classify, tt.classifyErr).Once()
			}

			svc := NewService(transcriber, classifier, rec, nil)
			a, err := svc.Analyze(context.Background(), "/tmp/audio.wav")
			tt.validate(t, a, err, rec)

			transcriber.AssertExpectations(t)
			if tt.expectClassify {
				classifier.AssertExpectations(t)
			} else {
				classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_ClassifiesTrimmedText(t *testing.T) {
	transcriber := testutil.NewMockTranscriber(t)
	classifier := testutil.NewMockClassifier(t)

	transcriber.On("Transcribe", mock.Anything, mock.Anything).
		Return(&transcribe.Result{Text: "\n what a day \n"}, nil)
	classifier.On("Classify", mock.Anything, "what a day").
		Return(&emotion.Result{Label: "joy", Score: 0.7}, nil)

	a, err := NewService(transcriber, classifier, nil, nil).Analyze(context.Background(), "x.wav")
	require.NoError(t, err)
	assert.Equal(t, "joy", a.Emotion.Label)
	classifier.AssertExpectations(t)
}

func TestService_CanceledContext(t *testing.T) {
	transcriber := testutil.NewMockTranscriber(t)
	classifier := testutil.NewMockClassifier(t)
	rec := &fakeRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transcriber.On("Transcribe", ctx, mock.Anything).Return(nil, context.Canceled)

	_, err := NewService(transcriber, classifier, rec, nil).Analyze(ctx, "x.wav")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []recordedFailure{{"transcribe", "canceled"}}, rec.failures)
}

func TestService_Models(t *testing.T) {
	svc := NewService(testutil.NewMockTranscriber(t), testutil.NewMockClassifier(t), nil, nil)

	assert.Equal(t, Models{
		Whisper:           "base",
		EmotionClassifier: "nateraw/bert-base-uncased-emotion",
	}, svc.Models())
}
