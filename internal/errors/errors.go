// Package errors provides custom error types for the fieldtrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrAdminOnly          = &AppError{Code: "ADMIN_ONLY", Message: "Only administrators may perform this operation", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists for this brand", StatusCode: http.StatusConflict}
)

// Employee errors.
var (
	ErrEmployeeNotFound = &AppError{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found", StatusCode: http.StatusNotFound}
	ErrInvalidDate      = &AppError{Code: "INVALID_DATE", Message: "Invalid date format, expected YYYY-MM-DD", StatusCode: http.StatusBadRequest}
)

// Import errors.
var (
	ErrNoFile          = &AppError{Code: "NO_FILE", Message: "No file was uploaded", StatusCode: http.StatusBadRequest}
	ErrUnsupportedFile = &AppError{Code: "UNSUPPORTED_FILE", Message: "Unsupported file format, expected .xlsx or .xls", StatusCode: http.StatusBadRequest}
	ErrImportFailed    = &AppError{Code: "IMPORT_FAILED", Message: "Failed to process the uploaded file", StatusCode: http.StatusInternalServerError}
)
