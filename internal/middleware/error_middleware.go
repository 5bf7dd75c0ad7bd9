package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

// StatusClientClosedRequest is written when the caller went away mid-request
const StatusClientClosedRequest = 499

// errorStatus maps err to an HTTP status and error code
func errorStatus(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, dto.ErrorCodeRequestCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.ErrorCodeTimeout
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidFormat), errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.ErrorCodeAccountDisabled
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, code := errorStatus(err)

	message := apperrors.Message(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Unhandled API error")
		// internal details stay in the log
		message = "Internal server error"
	}

	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}
