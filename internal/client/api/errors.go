package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for transport-level failures and the backend messages the
// UI reacts to specifically. Match with errors.Is; the server's own message
// text stays available on the wrapping *Error.
var (
	// ErrUnavailable: the backend could not be reached or timed out.
	ErrUnavailable = errors.New("service unavailable")
	// ErrUnauthorized: the request was rejected for missing/expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound: the resource does not exist.
	ErrNotFound = errors.New("not found")

	// Known login failure messages, pattern-matched so the login flow can
	// branch (e.g. send the user to OTP verification).
	ErrUserNotFound     = errors.New("user does not exist")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrUserNotVerified  = errors.New("user is not verified")
)

// Error is a non-2xx backend response. Message carries the server-provided
// text verbatim; all messages the UI does not recognize pass through opaquely.
type Error struct {
	StatusCode int
	Message    string

	sentinel error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap exposes the matched sentinel, if any, for errors.Is.
func (e *Error) Unwrap() error { return e.sentinel }

// newError classifies a backend failure. Known message texts win over the
// status code.
func newError(status int, msg string) *Error {
	e := &Error{StatusCode: status, Message: msg}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	switch msg {
	case "User does not exist":
		e.sentinel = ErrUserNotFound
	case "Password does not match":
		e.sentinel = ErrPasswordMismatch
	case "User is not verified":
		e.sentinel = ErrUserNotVerified
	default:
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			e.sentinel = ErrUnauthorized
		case http.StatusNotFound:
			e.sentinel = ErrNotFound
		}
	}
	return e
}

// ServerMessage extracts the backend-provided message from err, or returns
// fallback. Used by notification rendering.
func ServerMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
