package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// Client-facing messages. Internal causes are logged, never returned.
const (
	MessageProfileNotFound   = "Profile not found"
	MessageGenerationFailed  = "Failed to generate matches"
	MessageInternalServerErr = "Internal server error"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		resp := dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error())
		if vErr, ok := apperrors.AsValidation(err); ok {
			resp.Message = vErr.Message
			resp.WithField(vErr.Field)
		}
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, MessageProfileNotFound))
	case errors.Is(err, apperrors.ErrGenerationFailed):
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Match generation failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeExternalServiceError, MessageGenerationFailed))
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, MessageInternalServerErr))
	}
}

// NotFound answers unknown /api routes with a JSON body.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Route not found"))
	}
}
