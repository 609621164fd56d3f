package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthenticated    = errors.New("authentication required, please log in")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Transport errors
	ErrServiceUnavailable = errors.New("service unavailable, please try again")
)

// Student Errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

// Hostel and allocation errors
var (
	ErrHostelNotFound          = errors.New("hostel not found")
	ErrHostelNotOffered        = errors.New("hostel is not offered to this student")
	ErrChoicesAlreadySubmitted = errors.New("hostel choices already submitted")
	ErrPaymentRequired         = errors.New("accommodation payment not confirmed")
	ErrNotEligible             = errors.New("student is not eligible for hostel selection")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// FieldError is a single failed form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field failures found before any request is sent.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add appends a field failure
func (v *ValidationError) Add(field, message string) *ValidationError {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
	return v
}

// HasErrors reports whether any field failed
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// Err returns v as an error, or nil when nothing failed
func (v *ValidationError) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Error implements error interface
func (v *ValidationError) Error() string {
	if len(v.Fields) == 1 {
		return v.Fields[0].Message
	}
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%d fields are invalid: %s", len(v.Fields), strings.Join(msgs, "; "))
}

// Unwrap makes ValidationError match ErrValidationFailed
func (v *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// APIError is a non-2xx response from the accommodation backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

// Error implements error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Unwrap implements errors.Unwrap interface
func (e *APIError) Unwrap() error {
	return e.Err
}
