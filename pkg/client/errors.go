package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired is returned when an operation needs a signed-in
	// session and none is present. The local cart is never touched in that case.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrSessionExpired is returned when the server answers 401. The session is
	// invalidated before the error is returned; the caller must sign in again.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError reports a client-side precondition failure. No request has
// been sent when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// APIError carries a non-2xx server response so callers can show the server's
// message to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Message)
}
