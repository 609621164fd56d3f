package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, dto.ErrorCodeInternalServer
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
		message = "Invalid student ID or password"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, code = http.StatusForbidden, dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrPaymentRequired):
		status, code = http.StatusForbidden, dto.ErrorCodePaymentRequired
	case errors.Is(err, apperrors.ErrNotEligible):
		status, code = http.StatusForbidden, dto.ErrorCodeNotEligible
	case errors.Is(err, apperrors.ErrChoicesAlreadySubmitted):
		status, code = http.StatusConflict, dto.ErrorCodeAlreadySubmitted
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		status, code = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrHostelNotOffered):
		status, code = http.StatusBadRequest, dto.ErrorCodeHostelNotOffered
	case apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrHostelNotFound, apperrors.ErrResourceNotFound):
		status, code = http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrValidationFailed):
		status, code = http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	}

	if status != http.StatusInternalServerError && code != dto.ErrorCodeInvalidCredentials {
		message = err.Error()
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
