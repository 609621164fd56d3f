package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Allocation workflow errors
	ErrorCodePaymentRequired  ErrorCode = "HOS_001"
	ErrorCodeAlreadySubmitted ErrorCode = "HOS_002"
	ErrorCodeNotEligible      ErrorCode = "HOS_003"
	ErrorCodeHostelNotOffered ErrorCode = "HOS_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// ErrorSeverityError is the only level the backend sends
const ErrorSeverityError ErrorSeverity = "ERROR"

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code"`
	Message  string        `json:"message"`
	Field    string        `json:"field,omitempty"`
	Severity ErrorSeverity `json:"severity"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response. The message is
// duplicated at the top level for clients that only read `message`.
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Message:   errorDetail.Message,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// APIErrorBody is the union of error shapes the backend is known to send:
// {"message": "..."}, {"error": "..."} and {"error": {"code": ..., "message": ...}}.
type APIErrorBody struct {
	Message string
	Code    string
}

// UnmarshalJSON implements json.Unmarshaler
func (b *APIErrorBody) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Message = raw.Message

	errField := strings.TrimSpace(string(raw.Error))
	switch {
	case errField == "" || errField == "null":
	case strings.HasPrefix(errField, `"`):
		var s string
		if err := json.Unmarshal(raw.Error, &s); err != nil {
			return fmt.Errorf("decode error string: %w", err)
		}
		if b.Message == "" {
			b.Message = s
		}
	case strings.HasPrefix(errField, "{"):
		var detail ErrorDetail
		if err := json.Unmarshal(raw.Error, &detail); err != nil {
			return fmt.Errorf("decode error object: %w", err)
		}
		b.Code = string(detail.Code)
		if detail.Message != "" {
			b.Message = detail.Message
		}
	}
	return nil
}
