package platformerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies a failure of the relay.
type ErrorType string

const (
	// ErrorTypeUpstream is a non-2xx answer from the upstream provider.
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeInternal is any failure not tied to an upstream HTTP status.
	ErrorTypeInternal ErrorType = "internal"
)

// PlatformError is the tagged failure returned by the relay.
// Upstream errors carry the provider's status and raw body as Detail;
// internal errors carry the cause's message.
type PlatformError struct {
	Type   ErrorType
	Status int
	Detail string
	Err    error
}

func (e *PlatformError) Error() string {
	if e.Type == ErrorTypeUpstream {
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("internal error: %s", e.Detail)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps an upstream rejection.
func NewUpstreamError(status int, body string) *PlatformError {
	return &PlatformError{
		Type:   ErrorTypeUpstream,
		Status: status,
		Detail: body,
	}
}

// NewInternalError wraps a local or transport failure.
func NewInternalError(err error) *PlatformError {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return &PlatformError{
		Type:   ErrorTypeInternal,
		Status: http.StatusInternalServerError,
		Detail: detail,
		Err:    err,
	}
}

// AsPlatformError returns err as a PlatformError, treating anything
// untyped as internal.
func AsPlatformError(err error) *PlatformError {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe
	}
	return NewInternalError(err)
}
