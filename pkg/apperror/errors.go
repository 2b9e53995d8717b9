package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code and a
// machine-readable reason the client can branch on.
type AppError struct {
	Code    int          `json:"code"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches two AppErrors by reason so wrapped copies still compare equal
// to the package-level sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Reason == "" || t.Reason == "" {
		return e == t
	}
	return e.Reason == t.Reason
}

// Reasons
const (
	ReasonNotFound            = "NOT_FOUND"
	ReasonUnauthorized        = "UNAUTHORIZED"
	ReasonForbidden           = "FORBIDDEN"
	ReasonBadRequest          = "BAD_REQUEST"
	ReasonConflict            = "CONFLICT"
	ReasonValidation          = "VALIDATION_FAILED"
	ReasonInternal            = "INTERNAL"
	ReasonNoCustomerSelected  = "NO_CUSTOMER_SELECTED"
	ReasonSnapshotInvalid     = "SNAPSHOT_INVALID"
	ReasonFinalizeTimeout     = "FINALIZE_TIMEOUT"
	ReasonEstimateUnavailable = "ESTIMATE_UNAVAILABLE"
)

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Reason: ReasonNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Reason: ReasonBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Reason: ReasonInternal, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Reason: ReasonConflict, Message: "Resource already exists"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: "Invalid token"}

	ErrNoCustomerSelected = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonNoCustomerSelected,
		Message: "Select a customer before finalizing the quote",
	}
	ErrSnapshotInvalid = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonSnapshotInvalid,
		Message: "Quote item data is not serializable",
	}
	ErrFinalizeTimeout = &AppError{
		Code:    http.StatusGatewayTimeout,
		Reason:  ReasonFinalizeTimeout,
		Message: "Saving the quote took too long, please try again",
	}
	ErrEstimateUnavailable = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonEstimateUnavailable,
		Message: "Could not estimate the vehicle panels, please try again",
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a single-field validation error.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Reason:  ReasonInternal,
		Message: err.Error(),
	}
}
