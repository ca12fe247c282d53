// Package batch runs the analysis pipeline over local audio files.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"emotion-audio/internal/app/analysis"
	"emotion-audio/internal/app/upload"
)

// Analyzer is the pipeline run for each file
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*analysis.Analysis, error)
}

// FileResult is the outcome for one input file
type FileResult struct {
	File   string             `json:"file"`
	Result *analysis.Analysis `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Runner analyzes files with bounded parallelism
type Runner struct {
	service   Analyzer
	validator *upload.Validator
	parallel  int
	progress  *Progress
	logger    *zap.Logger
}

// NewRunner creates a runner. parallel below one is treated as one and a nil
// progress disables the bar.
func NewRunner(service Analyzer, validator *upload.Validator, parallel int, progress *Progress, logger *zap.Logger) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		service:   service,
		validator: validator,
		parallel:  parallel,
		progress:  progress,
		logger:    logger,
	}
}

// Run analyzes every file and returns results in input order.
// Per-file failures are reported in FileResult.Error.
func (r *Runner) Run(ctx context.Context, files []string) []FileResult {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results
	}

	tracker := r.progress.start(len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.parallel)

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()

			sem <- struct{}{}
			start := time.Now()
			results[i] = r.analyzeFile(ctx, file)
			<-sem

			tracker.done(time.Since(start))
		}(i, file)
	}
	wg.Wait()

	tracker.finish(ctx.Err() != nil)
	return results
}

func (r *Runner) analyzeFile(ctx context.Context, file string) FileResult {
	result := FileResult{File: file}

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	if err := r.validator.ValidateExtension(filepath.Base(file)); err != nil {
		result.Error = err.Error()
		return result
	}

	info, err := os.Stat(file)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if err := r.validator.ValidateSize(info.Size()); err != nil {
		result.Error = err.Error()
		return result
	}

	analysisResult, err := r.service.Analyze(ctx, file)
	if err != nil {
		r.logger.Error("Error processing audio", zap.String("file", file), zap.Error(err))
		result.Error = "Error processing audio: " + err.Error()
		return result
	}

	r.logger.Info("Analyzed audio file",
		zap.String("file", file),
		zap.String("emotion", analysisResult.Emotion.Label),
	)
	result.Result = analysisResult
	return result
}

// Failed counts results carrying an error
func Failed(results []FileResult) int {
	return lo.CountBy(results, func(res FileResult) bool { return res.Error != "" })
}
