package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emotion-audio/internal/api/errors"
	"emotion-audio/internal/api/middleware"
	"emotion-audio/internal/app/analysis"
	apperrors "emotion-audio/internal/app/errors"
	"emotion-audio/internal/app/upload"
	"emotion-audio/internal/metrics"
)

// FileField is the multipart field carrying the audio
const FileField = "file"

// multipartOverhead bounds the non-file bytes of an upload request
const multipartOverhead = 1 << 20

// Analyzer runs the transcription and emotion pipeline on a stored file
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*analysis.Analysis, error)
	Models() analysis.Models
}

// AnalyzeHandler handles audio uploads
type AnalyzeHandler struct {
	service   Analyzer
	validator *upload.Validator
	store     *upload.Store
	metrics   metrics.Recorder
	logger    *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service Analyzer, validator *upload.Validator, store *upload.Store, recorder metrics.Recorder, logger *zap.Logger) *AnalyzeHandler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeHandler{
		service:   service,
		validator: validator,
		store:     store,
		metrics:   recorder,
		logger:    logger,
	}
}

// Analyze handles POST /analyze-audio
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.validator.MaxBytes()+multipartOverhead)

	// Recovery middleware answers the panic; count it before passing it on
	defer func() {
		if recovered := recover(); recovered != nil {
			h.metrics.RecordOutcome(metrics.OutcomeInternalError)
			panic(recovered)
		}
	}()

	result, err := h.process(c)
	if err != nil {
		h.metrics.RecordOutcome(outcome(err))
		if middleware.Translate(err).HTTPStatus() >= http.StatusInternalServerError {
			h.logger.Error("Error processing audio",
				zap.String("request_id", c.GetString(middleware.RequestIDKey)),
				zap.Error(err),
			)
		}
		middleware.HandleError(c, err)
		return
	}

	if result.Warning != "" {
		h.metrics.RecordOutcome(metrics.OutcomeNoSpeech)
	} else {
		h.metrics.RecordOutcome(metrics.OutcomeSuccess)
	}
	c.JSON(http.StatusOK, result)
}

// process validates and stores the upload, then runs the pipeline.
// The temp file is released before it returns.
func (h *AnalyzeHandler) process(c *gin.Context) (*analysis.Analysis, error) {
	part, err := h.filePart(c.Request)
	if err != nil {
		return nil, err
	}
	defer part.Close()

	filename := part.FileName()
	h.logger.Info("Received audio file",
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("filename", filename),
	)

	if err := h.validator.ValidateExtension(filename); err != nil {
		return nil, err
	}

	tmp, err := h.store.Acquire(upload.Extension(filename))
	if err != nil {
		return nil, apperrors.Processing(err)
	}
	defer func() {
		if err := tmp.Release(); err != nil {
			h.logger.Warn("temp file cleanup failed", zap.String("path", tmp.Path()), zap.Error(err))
		}
	}()

	n, err := tmp.WriteFrom(part, h.validator.MaxBytes())
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, h.validator.ValidateSize(h.validator.MaxBytes() + 1)
		}
		return nil, apperrors.Processing(err)
	}
	if err := h.validator.ValidateSize(n); err != nil {
		return nil, err
	}

	return h.service.Analyze(c.Request.Context(), tmp.Path())
}

// filePart advances the multipart stream to the file field without buffering the body
func (h *AnalyzeHandler) filePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, apperrors.ErrMissingFile
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return nil, apperrors.ErrMissingFile
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				return nil, h.validator.ValidateSize(h.validator.MaxBytes() + 1)
			}
			return nil, errors.NewBadRequestError("Malformed multipart body")
		}
		if part.FormName() == FileField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

func outcome(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidFileType):
		return metrics.OutcomeInvalidFileType
	case apperrors.Is(err, apperrors.ErrFileTooLarge):
		return metrics.OutcomeFileTooLarge
	case apperrors.Is(err, apperrors.ErrProcessing):
		return metrics.OutcomeProcessingError
	case apperrors.IsClientError(err):
		return metrics.OutcomeBadRequest
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) && apiErr.HTTPStatus() < http.StatusInternalServerError {
		return metrics.OutcomeBadRequest
	}
	return metrics.OutcomeInternalError
}
