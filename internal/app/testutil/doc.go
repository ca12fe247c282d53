// Package testutil provides testing utilities for the emotion-audio service.
//
// It contains testify mocks for the two model adapters and audio fixtures.
//
//	func TestSomething(t *testing.T) {
//	    transcriber := testutil.NewMockTranscriber(t)
//	    transcriber.On("Transcribe", mock.Anything, mock.Anything).
//	        Return(&transcribe.Result{Text: "hello"}, nil)
//
//	    classifier := testutil.NewMockClassifier(t)
//	    classifier.On("Classify", mock.Anything, "hello").
//	        Return(&emotion.Result{Label: "joy", Score: 0.9}, nil)
//	}
//
// SilentWAV builds a valid all-zero PCM file for the no-speech scenario.
package testutil
