package middleware

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emotion-audio/internal/api/errors"
	apperrors "emotion-audio/internal/app/errors"
)

// ErrorHandler recovers from panics and answers with the generic internal error
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Error processing request",
			zap.Any("recovered", recovered),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		c.AbortWithStatusJSON(errors.NewInternalError().HTTPStatus(), errors.NewInternalError())
	})
}

// Translate maps any error to the API error sent to the client
func Translate(err error) *errors.APIError {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidFileType):
		return errors.NewInvalidFileTypeError(err.Error())
	case apperrors.Is(err, apperrors.ErrFileTooLarge):
		return errors.NewFileTooLargeError(err.Error())
	case apperrors.Is(err, apperrors.ErrMissingFile):
		return errors.NewValidationError("No file uploaded")
	case apperrors.Is(err, apperrors.ErrProcessing):
		return errors.NewProcessingError(err)
	default:
		return errors.NewInternalError()
	}
}

// HandleError aborts the request with the translated error
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	_ = c.Error(err)
	apiErr := Translate(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
