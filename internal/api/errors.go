package api

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when an auth response carries no token.
var ErrMissingToken = errors.New("response is missing a token")

// ErrMalformedPayload is returned when a 2xx body cannot be decoded.
var ErrMalformedPayload = errors.New("malformed response payload")

// Error is a non-2xx backend response. Message is the backend's
// human-readable explanation when one was provided.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is a backend Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
