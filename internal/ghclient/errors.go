package ghclient

import (
	"errors"
	"fmt"
)

// ErrKind classifies an API failure. Retryable vs. fatal kinds are
// distinguishable at call sites without string matching.
type ErrKind string

// All error kinds surfaced by the client.
const (
	ErrKindNetwork     ErrKind = "network"            // connection/timeout, retryable
	ErrKindServer      ErrKind = "server"             // 5xx, retryable
	ErrKindRateLimited ErrKind = "rate_limited"       // 403 with zero remaining quota, handled by waiting
	ErrKindAuth        ErrKind = "authentication"     // 401, fatal
	ErrKindForbidden   ErrKind = "forbidden"          // 403 without rate-limit signal, fatal
	ErrKindNotFound    ErrKind = "not_found"          // 404, fatal or empty-result per call site
	ErrKindValidation  ErrKind = "validation"         // 422, fatal
	ErrKindMalformed   ErrKind = "malformed_response" // JSON parse failure, retryable
)

// APIError carries the request context of a failed call: which endpoint, how
// many attempts were consumed, and the last HTTP status observed.
type APIError struct {
	Kind       ErrKind
	Endpoint   string
	StatusCode int
	Attempts   int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s error on %s", e.Kind, e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Attempts > 1 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error { return e.Err }

// Retryable reports whether the failure kind is transient.
func (e *APIError) Retryable() bool {
	return e.Kind == ErrKindNetwork || e.Kind == ErrKindServer || e.Kind == ErrKindMalformed
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
