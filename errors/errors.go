package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeConflict
	ErrorTypeUnprocessable

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeEmail

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeConflict:
		return "CONFLICT_ERROR"
	case ErrorTypeUnprocessable:
		return "UNPROCESSABLE_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeEmail:
		return "EMAIL_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewConflictError(message string) *AppError {
	return New(ErrorTypeConflict, message)
}

func NewUnprocessableError(message string) *AppError {
	return New(ErrorTypeUnprocessable, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewEmailError(message string, cause error) *AppError {
	return Wrap(ErrorTypeEmail, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeNotFound
	}
	return false
}

func IsConflictError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeConflict
	}
	return false
}

func IsValidationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeValidation
	}
	return false
}

func IsUnprocessableError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeUnprocessable
	}
	return false
}

func IsDatabaseError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeDatabase
	}
	return false
}

func IsEmailError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeEmail
	}
	return false
}

func IsConfigurationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeConfiguration
	}
	return false
}
