package apierrors

import "fmt"

// AppError defines a standard application error.
type AppError struct {
	Code     string        // Application-specific error code
	Category ErrorCategory // Business rule violation vs technical failure
	Message  string        // User-friendly error message
	Err      error         // Original underlying error (optional)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		// Include cause for better internal logging
		return fmt.Sprintf("AppError(Code=%s, Message=%s, Cause=%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("AppError(Code=%s, Message=%s)", e.Code, e.Message)
}

// Unwrap provides compatibility for errors.Is and errors.As.
// This allows checking the underlying error cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the application category.
// Kept for call sites that predate the category split.
func NewAppError(code, message string, cause error) *AppError {
	return NewApplicationError(code, message, cause)
}

// NewApplicationError creates an AppError for technical/infrastructure failures.
func NewApplicationError(code, message string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Category: CategoryApplication,
		Message:  message,
		Err:      cause,
	}
}

// NewBusinessError creates an AppError for business rule violations.
func NewBusinessError(code, message string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Category: CategoryBusiness,
		Message:  message,
		Err:      cause,
	}
}
