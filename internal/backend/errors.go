package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the normalized form of any upstream failure. Status 0 means the
// request never produced a response (transport failure).
type Error struct {
	Status  int                 `json:"status,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// AsError unwraps err into a *Error if it is one.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	be, ok := AsError(err)
	return ok && be.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	be, ok := AsError(err)
	return ok && be.Status == http.StatusUnauthorized
}

// IsValidation reports whether err is an upstream 422 carrying a field map.
func IsValidation(err error) bool {
	be, ok := AsError(err)
	return ok && be.Status == http.StatusUnprocessableEntity
}

// statusMessage returns the fixed human-readable message for a status class,
// used when the error body carries no message of its own.
func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Unauthorized - Please log in"
	case status == http.StatusForbidden:
		return "Forbidden - You do not have permission to perform this action"
	case status == http.StatusNotFound:
		return "Resource not found"
	case status >= 500:
		return "Server error - Please try again later"
	default:
		return "An error occurred"
	}
}
