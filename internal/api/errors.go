package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrLoggingOut indicates a request was suppressed because a logout
	// is in progress. Identity checks treat this as a no-op.
	ErrLoggingOut = errors.New("logout in progress")

	// ErrSessionExpired indicates the session could not be refreshed
	// and the user must sign in again.
	ErrSessionExpired = errors.New("session expired")
)

// Kind classifies gateway errors so callers never need to inspect
// transport details.
type Kind string

const (
	// KindAuth is a credential rejection on login/register. Never
	// triggers a refresh.
	KindAuth Kind = "auth"

	// KindSession is an expired session that the refresh protocol
	// could not recover.
	KindSession Kind = "session"

	// KindServer is any other HTTP-level failure.
	KindServer Kind = "server"

	// KindNetwork is a transport failure before any HTTP status.
	KindNetwork Kind = "network"
)

// Error is the gateway's error contract: a kind, the HTTP status (zero
// for network errors), and a user-facing message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// UserMessage extracts a message suitable for display from any error
// returned by the gateway or services, falling back to fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorBody is the JSON error envelope the server uses.
type errorBody struct {
	Error string `json:"error"`
}

// serverMessage pulls the server-supplied message out of a response
// body, or returns fallback if the body carries none.
func serverMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return fallback
}
