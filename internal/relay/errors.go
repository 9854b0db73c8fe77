package relay

import (
	"errors"
	"net/http"
)

// Kind classifies a relay failure. Every kind maps to exactly one HTTP
// status; all failures are terminal for the request and never retried.
type Kind string

const (
	// KindValidation is a missing or empty required field.
	KindValidation Kind = "validation"
	// KindMalformed is an unparsable request body.
	KindMalformed Kind = "malformed_request"
	// KindConfiguration is an absent transport credential.
	KindConfiguration Kind = "configuration"
	// KindTransport is a connection or send failure.
	KindTransport Kind = "transport"
)

// Error is the relay's error taxonomy. Message is the user-visible error
// string; Detail, when set, is surfaced in the response "details" field.
// The wrapped error is for logs only and may carry transport internals.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindMalformed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AsError extracts a relay *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var re *Error
	ok := errors.As(err, &re)
	return re, ok
}
