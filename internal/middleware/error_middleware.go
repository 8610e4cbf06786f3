package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/academico/internal/app/models/dto"
	"github.com/lfarias/academico/internal/pkg/apperrors"
)

// HandleAPIError translates application errors to HTTP error responses.
// Taxonomy: not-found -> 404, invalid argument -> 400, remote student service
// failure -> 503, anything else -> 500. Every failure reaches the caller; none
// are retried or suppressed.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrEnrollmentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, err.Error()))

	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrCPFAlreadyExists,
		apperrors.ErrStudentInactive,
		apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, err.Error()))

	case errors.Is(err, apperrors.ErrStudentServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError,
			"An unexpected error occurred: "+err.Error()))
	}
}
