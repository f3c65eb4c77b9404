package spotify

import (
	"fmt"
)

// Error represents a Spotify Web API error.
//
// The Web API reports failures as a JSON "regular error object"
// carrying an HTTP status and a message. Error implements error and
// supports errors.Is matching on the status.
type Error struct {
	Status  int    // HTTP status code reported by the API
	Message string // Error message from the API
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("spotify: error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Spotify API error with the
// same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Common API error statuses.
const (
	ErrStatusUnauthorized = 401
	ErrStatusForbidden    = 403
	ErrStatusNotFound     = 404
	ErrStatusRateLimited  = 429
)

// Predefined errors for common cases.
var (
	// ErrNoToken is returned when an operation requires authentication
	// but no usable token is cached. Run the authorization flow to
	// obtain one.
	ErrNoToken = fmt.Errorf("spotify: authorization required")

	// ErrNoRefreshToken is returned when a refresh is needed but the
	// cached token carries no refresh token.
	ErrNoRefreshToken = fmt.Errorf("spotify: no refresh token")
)
