package errors

import "fmt"

// ErrorCode represents an Aide error code.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrPermissionDenied    ErrorCode = "PERMISSION_DENIED"    // 403
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrNotConnected        ErrorCode = "NOT_CONNECTED"        // 409
	ErrAgentBusy           ErrorCode = "AGENT_BUSY"           // 409
	ErrInternal            ErrorCode = "INTERNAL"             // 500
	ErrModelUnavailable    ErrorCode = "MODEL_UNAVAILABLE"    // 503
	ErrProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE" // 503
)

// AideError represents a structured error with code, status, and details.
type AideError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AideError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AideError {
	return &AideError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPermissionDenied creates a 403 error for a capability the user has not granted.
func NewPermissionDenied(capability string) *AideError {
	return &AideError{
		Code:    ErrPermissionDenied,
		Status:  403,
		Message: fmt.Sprintf("the %q permission is not enabled; enable it in settings", capability),
		Details: map[string]any{"capability": capability},
	}
}

// NewNotFound creates a 404 error.
func NewNotFound(what string) *AideError {
	return &AideError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", what),
	}
}

// NewNotConnected creates a 409 error for operations that require a linked account.
func NewNotConnected() *AideError {
	return &AideError{
		Code:    ErrNotConnected,
		Status:  409,
		Message: "no account is connected; run connect first",
	}
}

// NewAgentBusy creates a 409 error for a send attempted while a reply is outstanding.
func NewAgentBusy() *AideError {
	return &AideError{
		Code:    ErrAgentBusy,
		Status:  409,
		Message: "a reply is already in flight; wait for it to finish",
	}
}

// NewModelUnavailable creates a 503 error for when no model credentials are configured.
func NewModelUnavailable(keyEnv string) *AideError {
	return &AideError{
		Code:    ErrModelUnavailable,
		Status:  503,
		Message: fmt.Sprintf("model is unavailable: set %s to enable it", keyEnv),
		Details: map[string]any{"api_key_env": keyEnv},
	}
}

// NewProviderUnavailable creates a 503 error for calendar/task provider failures.
func NewProviderUnavailable(err error) *AideError {
	msg := "data provider is unavailable"
	if err != nil {
		msg = fmt.Sprintf("data provider is unavailable: %v", err)
	}
	return &AideError{
		Code:    ErrProviderUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AideError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AideError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AideError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AideError); ok {
		return aErr.Code == code
	}
	return false
}
