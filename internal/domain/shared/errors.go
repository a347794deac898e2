package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Err is an optional underlying cause, not exposed to clients
	Err error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying an underlying cause
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes shared across bounded contexts
const (
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInvalidState    = "INVALID_STATE"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
)

// Common domain errors
var (
	ErrNotFound        = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists   = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput    = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConflict        = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrUnauthorized    = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden       = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState    = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrExternalService = NewDomainError(CodeExternalService, "External service unavailable")
)

// NewValidationError creates an INVALID_INPUT error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// NewNotFoundError creates a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}
