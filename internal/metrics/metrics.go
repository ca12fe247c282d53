package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline stages
const (
	StageUpload     = "upload"
	StageTranscribe = "transcribe"
	StageClassify   = "classify"
)

// Request outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeNoSpeech        = "no_speech"
	OutcomeInvalidFileType = "invalid_file_type"
	OutcomeFileTooLarge    = "file_too_large"
	OutcomeBadRequest      = "bad_request"
	OutcomeProcessingError = "processing_error"
	OutcomeInternalError   = "internal_error"
)

// Recorder records pipeline metrics
type Recorder interface {
	// Record a successful stage
	RecordSuccess(stage string, latency time.Duration)

	// Record a failed stage
	RecordFailure(stage string, errorType string)

	// Record the final outcome of an analyze request
	RecordOutcome(outcome string)
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordSuccess(string, time.Duration) {}
func (Nop) RecordFailure(string, string)        {}
func (Nop) RecordOutcome(string)                {}

// Prometheus implements Recorder with client_golang collectors
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

// NewPrometheus registers the pipeline collectors on reg.
// inFlight, when non-nil, is exported as the temp file gauge.
func NewPrometheus(reg prometheus.Registerer, inFlight func() float64) *Prometheus {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "emotion_audio",
			Name:      "stage_duration_seconds",
			Help:      "Latency of successful pipeline stages.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion_audio",
			Name:      "stage_failures_total",
			Help:      "Failed pipeline stages by error type.",
		}, []string{"stage", "error_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion_audio",
			Name:      "analyze_requests_total",
			Help:      "Analyze requests by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(p.stageDuration, p.stageFailures, p.requests)
	if inFlight != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "emotion_audio",
			Name:      "temp_files_in_flight",
			Help:      "Upload temp files currently on disk.",
		}, inFlight))
	}
	return p
}

// RecordSuccess implements Recorder
func (p *Prometheus) RecordSuccess(stage string, latency time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(latency.Seconds())
}

// RecordFailure implements Recorder
func (p *Prometheus) RecordFailure(stage string, errorType string) {
	p.stageFailures.WithLabelValues(stage, errorType).Inc()
}

// RecordOutcome implements Recorder
func (p *Prometheus) RecordOutcome(outcome string) {
	p.requests.WithLabelValues(outcome).Inc()
}
