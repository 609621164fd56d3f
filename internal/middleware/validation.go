package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/hostelportal/internal/app/models/dto"
)

// BindJSON binds the request body into obj. On failure it writes a 400 and
// returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(bindingErrorDetail(err)))
		return false
	}
	return true
}

func bindingErrorDetail(err error) *dto.ErrorDetail {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatBindingError(fe))
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, strings.Join(messages, "; "))
	if len(fieldErrs) == 1 {
		detail = detail.WithField(fieldErrs[0].Field())
	}
	return detail.WithDetails(messages)
}

// formatBindingError creates a human-readable validation error message
func formatBindingError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
